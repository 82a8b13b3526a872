package authstate

import (
	"encoding/json"
	"errors"
	"strings"
)

// DefaultProvider is the provider recorded for a state that never named one.
const DefaultProvider = "ed25519"

// JWK is structured key material in JSON Web Key form.
// The store treats it as opaque; callers own its contents.
type JWK map[string]any

// AuthState is the persisted credential record for one agent handle.
//
// All string fields are always present after normalization, empty when no
// data was available. The JWK fields remain nil when the record carries no
// structured key material.
type AuthState struct {
	// Handle is the agent identifier, also used to derive the file name.
	Handle string `json:"handle"`

	// APIKey is the agent's API key, possibly empty.
	APIKey string `json:"apiKey"`

	// PublicKeyPEM and PrivateKeyPEM hold PEM-encoded key material.
	PublicKeyPEM  string `json:"publicKeyPem"`
	PrivateKeyPEM string `json:"privateKeyPem"`

	// PublicKeyJWK and PrivateKeyJWK hold structured key material, or nil.
	PublicKeyJWK  JWK `json:"publicKeyJwk"`
	PrivateKeyJWK JWK `json:"privateKeyJwk"`

	// LastProvider is the most recent signing provider, DefaultProvider
	// when the record never named one.
	LastProvider string `json:"lastProvider"`

	// UpdatedAt is an RFC 3339 timestamp set by the store on every save.
	UpdatedAt string `json:"updatedAt"`

	// BaseURL is the service base URL associated with the credentials.
	BaseURL string `json:"baseUrl"`

	// VerificationProvider names the provider used for key verification.
	VerificationProvider string `json:"verificationProvider"`
}

// Field aliases accepted on read, in precedence order after the canonical
// name. Records written by earlier releases used snake_case names.
var (
	aliasAPIKey               = []string{"apiKey", "api_key"}
	aliasPublicKeyPEM         = []string{"publicKeyPem", "public_key_pem"}
	aliasPrivateKeyPEM        = []string{"privateKeyPem", "private_key_pem"}
	aliasPublicKeyJWK         = []string{"publicKeyJwk", "public_jwk"}
	aliasPrivateKeyJWK        = []string{"privateKeyJwk", "private_jwk"}
	aliasLastProvider         = []string{"lastProvider", "last_provider", "provider"}
	aliasUpdatedAt            = []string{"updatedAt", "updated_at"}
	aliasBaseURL              = []string{"baseUrl", "base_url"}
	aliasVerificationProvider = []string{"verificationProvider", "verification_provider"}
)

// UnmarshalJSON decodes a stored record, coalescing legacy snake_case field
// names into the canonical camelCase fields. The canonical name wins when a
// record carries both; values of the wrong type are ignored as if absent.
func (s *AuthState) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("auth state is not a JSON object")
	}

	*s = AuthState{
		Handle:               firstString(raw, "handle"),
		APIKey:               firstString(raw, aliasAPIKey...),
		PublicKeyPEM:         firstString(raw, aliasPublicKeyPEM...),
		PrivateKeyPEM:        firstString(raw, aliasPrivateKeyPEM...),
		PublicKeyJWK:         firstJWK(raw, aliasPublicKeyJWK...),
		PrivateKeyJWK:        firstJWK(raw, aliasPrivateKeyJWK...),
		LastProvider:         firstString(raw, aliasLastProvider...),
		UpdatedAt:            firstString(raw, aliasUpdatedAt...),
		BaseURL:              firstString(raw, aliasBaseURL...),
		VerificationProvider: firstString(raw, aliasVerificationProvider...),
	}
	return nil
}

// firstString returns the value of the first key present in raw as a string.
func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok {
			return v
		}
	}
	return ""
}

// firstJWK returns the value of the first key present in raw as an object.
func firstJWK(raw map[string]any, keys ...string) JWK {
	for _, key := range keys {
		if v, ok := raw[key].(map[string]any); ok {
			return JWK(v)
		}
	}
	return nil
}

// withDefaults returns a copy of s with field defaults applied.
func (s *AuthState) withDefaults() AuthState {
	out := *s
	out.Handle = strings.TrimSpace(out.Handle)
	if strings.TrimSpace(out.LastProvider) == "" {
		out.LastProvider = DefaultProvider
	}
	return out
}

// normalized returns a copy of s with defaults applied, or nil when the
// record carries no handle of its own and is therefore unusable.
func (s *AuthState) normalized() *AuthState {
	out := s.withDefaults()
	if out.Handle == "" {
		return nil
	}
	return &out
}
