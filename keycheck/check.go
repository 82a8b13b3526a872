package keycheck

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// DefaultPath is the endpoint probed when Params.Path is empty.
const DefaultPath = "/me"

// DefaultTimeout bounds the probe when Params.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Request describes one call for the collaborator to perform.
type Request struct {
	// BaseURL is the service base URL (e.g., "https://api.example.com").
	BaseURL string

	// Method is the HTTP method; the key check always issues GET.
	Method string

	// Path is the request path on the service.
	Path string

	// APIKey is the key under test, to be sent as credentials.
	APIKey string

	// Timeout bounds the whole request.
	Timeout time.Duration
}

// Result is the collaborator's view of the service response.
type Result struct {
	// OK reports whether the service answered with a success status.
	OK bool

	// Response is the decoded JSON payload. It may carry "error" and
	// "data" fields, which the check inspects.
	Response map[string]any
}

// RequestFunc is the transport collaborator. Implementations perform the
// request described by req and return the decoded response, or an error when
// the request could not be completed.
type RequestFunc func(ctx context.Context, req Request) (*Result, error)

// Reason identifies why a check produced its verdict.
type Reason string

const (
	// ReasonValid means the service accepted the key.
	ReasonValid Reason = "valid"

	// ReasonMissingKey means no API key was supplied.
	ReasonMissingKey Reason = "missing_key"

	// ReasonNoRequester means no transport collaborator was supplied.
	ReasonNoRequester Reason = "no_requester"

	// ReasonRequestFailed means the collaborator returned an error
	// (network failure, timeout, malformed response).
	ReasonRequestFailed Reason = "request_failed"

	// ReasonErrorResponse means the service answered unsuccessfully or the
	// payload carried an error field.
	ReasonErrorResponse Reason = "error_response"

	// ReasonEmptyData means the service answered successfully but the
	// payload's data field was absent or empty.
	ReasonEmptyData Reason = "empty_data"
)

// CheckResult is the full verdict of one key check.
type CheckResult struct {
	// Valid reports whether the service currently accepts the key.
	Valid bool

	// Reason identifies the cause of the verdict.
	Reason Reason

	// Err is the collaborator's error when Reason is ReasonRequestFailed.
	Err error
}

// Params configures one key check.
type Params struct {
	// APIKey is the key under test. An empty key is never valid.
	APIKey string

	// Request performs the HTTP call. Without one the check cannot run
	// and the key is reported not valid.
	Request RequestFunc

	// BaseURL is the service base URL.
	BaseURL string

	// Timeout bounds the probe; DefaultTimeout when zero.
	Timeout time.Duration

	// Path is the endpoint to probe; DefaultPath when empty.
	Path string
}

// Check probes the service and returns a full verdict. It never returns an
// error: every failure cause is folded into the result and distinguishable
// through its Reason.
func Check(ctx context.Context, p Params) CheckResult {
	if strings.TrimSpace(p.APIKey) == "" {
		return CheckResult{Reason: ReasonMissingKey}
	}
	if p.Request == nil {
		return CheckResult{Reason: ReasonNoRequester}
	}

	path := p.Path
	if path == "" {
		path = DefaultPath
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	res, err := p.Request(ctx, Request{
		BaseURL: p.BaseURL,
		Method:  http.MethodGet,
		Path:    path,
		APIKey:  p.APIKey,
		Timeout: timeout,
	})
	if err != nil {
		return CheckResult{Reason: ReasonRequestFailed, Err: err}
	}
	if res == nil || !res.OK || res.Response == nil {
		return CheckResult{Reason: ReasonErrorResponse}
	}
	if v, ok := res.Response["error"]; ok && v != nil {
		return CheckResult{Reason: ReasonErrorResponse}
	}
	if !truthy(res.Response["data"]) {
		return CheckResult{Reason: ReasonEmptyData}
	}
	return CheckResult{Valid: true, Reason: ReasonValid}
}

// HasValidAPIKey reports whether the remote service currently accepts the
// API key. All failure causes collapse to false; use Check when the cause
// matters.
func HasValidAPIKey(ctx context.Context, p Params) bool {
	return Check(ctx, p).Valid
}

// truthy applies the permissive emptiness rules the service payloads follow:
// nil, false, empty strings, and zero numbers are empty, everything else
// counts as data.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
