package keycheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Headers sent by the default requester.
const (
	// HeaderAPIKey carries the key under test.
	HeaderAPIKey = "X-API-Key"

	// HeaderRequestID carries a unique ID per request for correlation.
	HeaderRequestID = "X-Request-ID"
)

// tracerName identifies spans emitted by the default requester.
const tracerName = "authstate-keycheck"

// RequesterOption configures the default HTTP requester.
type RequesterOption func(*requesterConfig)

// requesterConfig holds configuration for NewHTTPRequester.
type requesterConfig struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	retryMax int
}

// WithRequesterLogger sets a custom logger for the requester.
// If not provided, the default slog logger is used.
func WithRequesterLogger(logger *slog.Logger) RequesterOption {
	return func(c *requesterConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the requester, emitting one
// span per request. A no-op tracer is used when none is provided.
func WithTracer(tracer trace.Tracer) RequesterOption {
	return func(c *requesterConfig) {
		c.tracer = tracer
	}
}

// WithRetryMax sets the maximum number of transport-level retries.
// Zero (the default) disables retries.
func WithRetryMax(n int) RequesterOption {
	return func(c *requesterConfig) {
		c.retryMax = n
	}
}

// NewHTTPRequester returns a RequestFunc backed by a retryable HTTP client.
// The returned function sends the API key in the X-API-Key header, tags each
// request with an X-Request-ID, and decodes the response body as a JSON
// object. A non-2xx status is reported through Result.OK rather than as an
// error, so the caller can inspect the error payload.
func NewHTTPRequester(opts ...RequesterOption) RequestFunc {
	cfg := &requesterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.retryMax
	client.Logger = cfg.logger

	return func(ctx context.Context, req Request) (*Result, error) {
		if req.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, req.Timeout)
			defer cancel()
		}

		method := req.Method
		if method == "" {
			method = http.MethodGet
		}
		url := strings.TrimRight(req.BaseURL, "/") + req.Path

		ctx, span := cfg.tracer.Start(ctx, "keycheck.request", trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", url),
		))
		defer span.End()

		httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set(HeaderAPIKey, req.APIKey)
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())

		resp, err := client.Do(httpReq)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

		var payload map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			cfg.logger.Debug("failed to decode key check response",
				"url", url,
				"error", err,
			)
			return nil, fmt.Errorf("decode response: %w", err)
		}

		return &Result{
			OK:       resp.StatusCode >= 200 && resp.StatusCode < 300,
			Response: payload,
		}, nil
	}
}
