package generatepdfs

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBaseURL is the production endpoint of the GeneratePDFs API.
const DefaultBaseURL = "https://api.generatepdfs.com"

const defaultUserAgent = "generatepdfs-go/1.0"

// clientConfig holds internal configuration for a Client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
	registerer prometheus.Registerer
	rateLimit  float64
	rateBurst  int
}

func defaultConfig() clientConfig {
	return clientConfig{
		baseURL:   DefaultBaseURL,
		timeout:   30 * time.Second,
		userAgent: defaultUserAgent,
		rateBurst: 1,
	}
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithBaseURL overrides the API endpoint. Trailing slashes are ignored.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for every request. When set,
// [WithTimeout] is ignored and the client's own Timeout applies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets the maximum duration of a single HTTP round trip.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for debug output. By default the
// client logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithMetrics registers the client's Prometheus collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithRateLimit caps outgoing requests to rps per second with the given
// burst. Requests wait for a token; they are never dropped or retried.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *clientConfig) {
		c.rateLimit = rps
		c.rateBurst = burst
	}
}
