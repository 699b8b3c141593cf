package generatepdfs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// Client talks to the GeneratePDFs API.
//
// A Client holds no mutable state after construction and is safe for
// concurrent use. Every method performs at most one HTTP round trip and
// never retries.
type Client struct {
	token      string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
	limiter    *rate.Limiter
	metrics    *clientMetrics
}

// NewClient creates a Client authenticating with apiToken.
func NewClient(apiToken string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiToken) == "" {
		return nil, invalidArgument("API token is required")
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	base, err := normalizeBaseURL(cfg.baseURL)
	if err != nil {
		return nil, err
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{}
		if cfg.timeout > 0 {
			hc.Timeout = cfg.timeout
		}
	}

	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	m, err := newClientMetrics(cfg.registerer)
	if err != nil {
		return nil, fmt.Errorf("%w: registering metrics: %w", ErrInvalidArgument, err)
	}

	c := &Client{
		token:      apiToken,
		baseURL:    base,
		userAgent:  cfg.userAgent,
		httpClient: hc,
		log:        log,
		metrics:    m,
	}
	if cfg.rateLimit > 0 {
		burst := cfg.rateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.rateLimit), burst)
	}
	return c, nil
}

// BaseURL returns the API endpoint the Client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GenerateFromHTML submits a local HTML file for rendering. cssPath may be
// empty. Images that are incomplete or unreadable are skipped; a missing
// HTML or CSS file fails with [ErrInvalidArgument].
func (c *Client) GenerateFromHTML(ctx context.Context, htmlPath, cssPath string, images []Image) (*Document, error) {
	req, err := buildHTMLRequest(c.log, htmlPath, cssPath, images)
	if err != nil {
		return nil, err
	}
	return c.generate(ctx, req)
}

// GenerateFromURL submits a public http or https page for rendering.
func (c *Client) GenerateFromURL(ctx context.Context, rawURL string) (*Document, error) {
	req, err := buildURLRequest(rawURL)
	if err != nil {
		return nil, err
	}
	return c.generate(ctx, req)
}

// GetPDF fetches the current state of the document with the given ID.
func (c *Client) GetPDF(ctx context.Context, id int64) (*Document, error) {
	if id <= 0 {
		return nil, invalidArgument("invalid PDF ID: %d", id)
	}
	resp, err := c.do(ctx, opGet, http.MethodGet, c.baseURL+"/pdfs/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}
	return c.mapResponse(opGet, resp)
}

// DownloadPDF fetches the raw PDF bytes from downloadURL.
func (c *Client) DownloadPDF(ctx context.Context, downloadURL string) ([]byte, error) {
	resp, err := c.do(ctx, opDownload, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &APIError{Op: opDownload, StatusCode: resp.statusCode, Reason: resp.reason, Body: resp.body}
	}
	c.metrics.downloadedBytes.Add(float64(len(resp.body)))
	return resp.body, nil
}

func (c *Client) generate(ctx context.Context, req *generateRequest) (*Document, error) {
	resp, err := c.do(ctx, opGenerate, http.MethodPost, c.baseURL+"/pdfs/generate", req)
	if err != nil {
		return nil, err
	}
	return c.mapResponse(opGenerate, resp)
}

func (c *Client) mapResponse(op string, resp *response) (*Document, error) {
	if !resp.ok() {
		return nil, &APIError{Op: op, StatusCode: resp.statusCode, Reason: resp.reason, Body: resp.body}
	}
	return toDocument(resp.body, c)
}

func normalizeBaseURL(raw string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if _, err := buildURLRequest(base); err != nil {
		return "", invalidArgument("invalid base URL: %q", raw)
	}
	return base, nil
}
