// Package keycheck asks a remote service whether an API key is currently
// accepted.
//
// The transport is a collaborator: callers supply a RequestFunc and keycheck
// decides what the answer means. A key is considered valid only when the
// collaborator reports a successful response whose payload carries no error
// field and a non-empty data field. Every failure — missing key, transport
// error, error payload, empty data — collapses to "not valid"; keycheck never
// surfaces an error to its caller.
//
// # Checking a Key
//
//	valid := keycheck.HasValidAPIKey(ctx, keycheck.Params{
//		APIKey:  state.APIKey,
//		BaseURL: state.BaseURL,
//		Request: keycheck.NewHTTPRequester(),
//	})
//
// When the boolean is not enough, Check returns a CheckResult whose Reason
// distinguishes the failure causes:
//
//	result := keycheck.Check(ctx, params)
//	if !result.Valid {
//		log.Printf("key rejected: %s: %v", result.Reason, result.Err)
//	}
//
// # Default Requester
//
// NewHTTPRequester builds a RequestFunc on hashicorp/go-retryablehttp. It
// sends the key in an X-API-Key header, tags each request with an
// X-Request-ID, and honors the per-request timeout. Retries are disabled by
// default; a validity probe should answer quickly or not at all.
package keycheck
