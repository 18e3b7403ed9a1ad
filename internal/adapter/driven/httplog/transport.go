// Package httplog provides an http.RoundTripper that logs outbound requests.
package httplog

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport logs each outbound request with method, host, path, status, and
// duration. Query strings are omitted so tokens never reach the log.
type Transport struct {
	Base   http.RoundTripper // http.DefaultTransport when nil.
	Logger *slog.Logger      // slog.Default() when nil.
}

// NewClient returns an http.Client whose transport logs through Transport.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &Transport{},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		logger.Debug("http request failed",
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond),
			"error", err,
		)
		return nil, err
	}

	logger.Debug("http request",
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, nil
}
