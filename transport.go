package generatepdfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operation labels used in logs, metrics and APIError.Op.
const (
	opGenerate = "generate"
	opGet      = "get"
	opDownload = "download"
)

// response is a fully read HTTP response.
type response struct {
	statusCode int
	reason     string
	body       []byte
}

func (r *response) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// do performs one authenticated round trip. payload, when non-nil, is sent
// as a JSON body. Non-success statuses are returned, not turned into errors.
func (c *Client) do(ctx context.Context, op, method, target string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding request: %w", ErrRuntime, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrRuntime, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if op == opDownload {
		req.Header.Set("Accept", "application/pdf")
	} else {
		req.Header.Set("Accept", "application/json")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for rate limiter: %w", ErrRuntime, err)
		}
	}

	c.log.Debug("sending request", "op", op, "method", method, "url", target, "request_id", requestID)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(op, 0, time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRuntime, method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.observe(op, resp.StatusCode, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrRuntime, err)
	}
	c.log.Debug("received response",
		"op", op,
		"status", resp.StatusCode,
		"bytes", len(data),
		"request_id", requestID,
		"duration", time.Since(start),
	)

	return &response{
		statusCode: resp.StatusCode,
		reason:     reasonPhrase(resp),
		body:       data,
	}, nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
