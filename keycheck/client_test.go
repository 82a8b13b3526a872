package keycheck

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietRequester(opts ...RequesterOption) RequestFunc {
	silent := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHTTPRequester(append([]RequesterOption{WithRequesterLogger(silent)}, opts...)...)
}

func TestNewHTTPRequester(t *testing.T) {
	var gotPath, gotKey, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get(HeaderAPIKey)
		gotRequestID = r.Header.Get(HeaderRequestID)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"u1"}}`))
	}))
	defer srv.Close()

	res, err := quietRequester()(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/me",
		APIKey:  "ak-1",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.OK)
	assert.Equal(t, map[string]any{"id": "u1"}, res.Response["data"])
	assert.Equal(t, "/me", gotPath)
	assert.Equal(t, "ak-1", gotKey)

	_, parseErr := uuid.Parse(gotRequestID)
	assert.NoError(t, parseErr, "each request carries a well-formed request ID")
}

func TestNewHTTPRequester_TrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":true}`))
	}))
	defer srv.Close()

	_, err := quietRequester()(context.Background(), Request{
		BaseURL: srv.URL + "/",
		Path:    "/me",
		APIKey:  "ak-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "/me", gotPath)
}

// TestNewHTTPRequester_Unauthorized verifies a non-2xx answer is reported
// through Result.OK with the error payload preserved, not as an error.
func TestNewHTTPRequester_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"invalid_key"}}`))
	}))
	defer srv.Close()

	requester := quietRequester()
	res, err := requester(context.Background(), Request{BaseURL: srv.URL, Path: "/me", APIKey: "ak-bad"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.OK)
	assert.Contains(t, res.Response, "error")

	// And the check built on it says the key is not valid.
	result := Check(context.Background(), Params{APIKey: "ak-bad", BaseURL: srv.URL, Request: requester})
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonErrorResponse, result.Reason)
}

func TestNewHTTPRequester_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := quietRequester()(context.Background(), Request{BaseURL: srv.URL, Path: "/me", APIKey: "ak-1"})
	assert.Error(t, err)
}

func TestNewHTTPRequester_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := quietRequester()(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/me",
		APIKey:  "ak-1",
		Timeout: 50 * time.Millisecond,
	})
	assert.Error(t, err)
}

// TestHasValidAPIKey_EndToEnd exercises the boolean boundary over the real
// requester against a local endpoint.
func TestHasValidAPIKey_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderAPIKey) == "ak-good" {
			w.Write([]byte(`{"data":{"id":"u1"}}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"invalid_key"}}`))
	}))
	defer srv.Close()

	requester := quietRequester()

	assert.True(t, HasValidAPIKey(context.Background(), Params{
		APIKey:  "ak-good",
		BaseURL: srv.URL,
		Request: requester,
	}))
	assert.False(t, HasValidAPIKey(context.Background(), Params{
		APIKey:  "ak-bad",
		BaseURL: srv.URL,
		Request: requester,
	}))
	assert.False(t, HasValidAPIKey(context.Background(), Params{
		APIKey:  "ak-good",
		BaseURL: "http://127.0.0.1:1",
		Request: requester,
		Timeout: time.Second,
	}))
}
