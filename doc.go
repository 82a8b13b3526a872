// Package authstate persists per-agent authentication credentials for the
// Gibson Framework ecosystem.
//
// Each agent is identified by a human-readable handle. The package stores one
// JSON file per handle containing the agent's API key, key-pair material, and
// provider metadata, and offers a lightweight remote check of API-key validity
// through the keycheck subpackage.
//
// # Storage Layout
//
// State lives at <stateDir>/<handle>.json, with path separators in the handle
// replaced by underscores. The state directory is resolved per call in a fixed
// precedence order:
//
//   - WithStateDir option
//   - GIBSON_AGENT_AUTH_DIR environment variable
//   - state_dir from an optional YAML defaults file (WithConfigFile)
//   - ~/.gibson/agent-auth
//
// Prior storage locations can be consulted as read-only fallbacks via
// WithLegacyStateDirs; they are never written to.
//
// # Operations
//
// The package exposes four operations:
//
//   - FilePath: resolve where state for a handle lives
//   - Load: read, normalize, and validate stored state
//   - Save: normalize and overwrite state for a handle
//   - Clear: remove state from the primary and legacy locations
//
// Load accepts records written with legacy snake_case field names (api_key,
// public_key_pem, provider, ...) and coalesces them to the canonical camelCase
// names. A state file that cannot be parsed is quarantined by renaming it with
// a .corrupt-<timestamp> suffix rather than deleted; the caller simply
// observes that no state was found.
//
// # Getting Started
//
//	import "github.com/zero-day-ai/authstate"
//
//	state := &authstate.AuthState{
//		APIKey:       "ak-...",
//		LastProvider: "ed25519",
//	}
//	if err := authstate.Save("my-agent", state); err != nil {
//		log.Fatal(err)
//	}
//
//	loaded, err := authstate.Load("my-agent")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if loaded != nil {
//		fmt.Println(loaded.APIKey)
//	}
//
// # Concurrency
//
// The package is stateless aside from the files on disk. Two concurrent loads
// are safe; two concurrent saves for the same handle race at the filesystem
// level with last-write-wins semantics. Callers that need stronger guarantees
// must serialize access per handle themselves.
package authstate
