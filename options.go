package authstate

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// EnvStateDir is the environment variable that overrides the default state
// directory. A per-call WithStateDir option takes precedence over it.
const EnvStateDir = "GIBSON_AGENT_AUTH_DIR"

// defaultDirParts is the built-in state directory below the user's home.
var defaultDirParts = []string{".gibson", "agent-auth"}

// Option configures a single store operation.
type Option func(*settings)

// settings holds the resolved configuration for one operation.
type settings struct {
	stateDir        string
	legacyStateDirs []string
	configFile      string
	logger          *slog.Logger
	now             func() time.Time
}

// WithStateDir sets the state directory for this operation, taking precedence
// over the environment override, the defaults file, and the built-in default.
func WithStateDir(dir string) Option {
	return func(s *settings) {
		s.stateDir = dir
	}
}

// WithLegacyStateDirs supplies prior storage locations, in the order they
// should be consulted. Load falls back to them when the primary location has
// no state; Clear removes state from them. They are never written to.
func WithLegacyStateDirs(dirs ...string) Option {
	return func(s *settings) {
		s.legacyStateDirs = append(s.legacyStateDirs, dirs...)
	}
}

// WithConfigFile points the operation at a YAML defaults file (see Config).
// Values from the file rank below the WithStateDir option and the environment
// override, and above the built-in default.
func WithConfigFile(path string) Option {
	return func(s *settings) {
		s.configFile = path
	}
}

// WithLogger sets a custom logger for the operation.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithNow injects the clock used for updatedAt stamps and quarantine
// suffixes. Intended for tests; defaults to time.Now.
func WithNow(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// resolve applies the options and computes the effective state directory and
// legacy directory list for one operation. op names the public operation for
// error reporting.
func resolve(op string, opts []Option) (*settings, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if s.now == nil {
		s.now = time.Now
	}

	var fileCfg *Config
	if s.configFile != "" {
		cfg, err := LoadConfig(s.configFile)
		if err != nil {
			return nil, newConfigurationError(op, err)
		}
		fileCfg = cfg
		s.legacyStateDirs = append(s.legacyStateDirs, cfg.LegacyStateDirs...)
	}

	if s.stateDir == "" {
		s.stateDir = os.Getenv(EnvStateDir)
	}
	if s.stateDir == "" && fileCfg != nil {
		s.stateDir = fileCfg.StateDir
	}
	if s.stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, newConfigurationError(op, err)
		}
		s.stateDir = filepath.Join(append([]string{home}, defaultDirParts...)...)
	}
	return s, nil
}
