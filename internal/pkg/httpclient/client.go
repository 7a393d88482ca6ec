// Package httpclient builds the http.Client used for calls to the payment
// gateway and the carrier.
package httpclient

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggingRoundTripper logs every outbound request with its status and duration.
type LoggingRoundTripper struct {
	Proxied http.RoundTripper
	Logger  *zap.Logger
}

func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", req.URL.Path),
	}

	resp, err := lrt.Proxied.RoundTrip(req)
	fields = append(fields, zap.Duration("duration", time.Since(start)))

	if err != nil {
		lrt.Logger.Error("outbound request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	lrt.Logger.Debug("outbound request completed", append(fields, zap.Int("status_code", resp.StatusCode))...)
	return resp, nil
}

// NewClient returns a client whose requests are logged and bounded by timeout.
// Query strings are not logged because gateway URLs may carry credentials.
func NewClient(timeout time.Duration, logger *zap.Logger) *http.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
			Logger:  logger.With(zap.String("component", "httpclient")),
		},
		Timeout: timeout,
	}
}
