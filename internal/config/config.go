// Package config loads revert settings from a TOML or YAML file and the
// environment.
//
// Sources are layered: built-in defaults, then the config file, then
// REVERT_* environment variables. The merged result is validated before
// it is returned.
//
//	cfg, err := config.Load(config.WithPath("revert.toml"))
//	policy, err := config.HistoryPolicy[string](cfg.History)
package config

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/dshills/revert/internal/config/loader"
	"github.com/dshills/revert/internal/history/storage"
)

// Default values.
const (
	DefaultPolicy   = storage.NameSingle
	DefaultCapacity = 16
	DefaultLogLevel = "info"

	// MaxCapacity bounds history.capacity for the array and ring policies.
	MaxCapacity = storage.MaxCapacity
)

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds every setting.
type Config struct {
	History HistoryConfig
	Logging LoggingConfig
}

// HistoryConfig selects the storage policy for undo and redo stacks.
type HistoryConfig struct {
	// Policy is one of storage.Names().
	Policy string
	// Capacity is the stack size for the array and ring policies.
	// The single policy always holds one entry.
	Capacity int
}

// LoggingConfig configures the command-line tool's logger.
type LoggingConfig struct {
	Level string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{Policy: DefaultPolicy, Capacity: DefaultCapacity},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	path      string
	fs        loader.FileSystem
	envPrefix string
	useEnv    bool
}

// WithPath sets the configuration file. The format follows the extension.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFS sets the file system the configuration file is read from.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(o *options) {
		o.useEnv = false
	}
}

// Load builds the configuration from defaults, the optional file and the
// environment, and validates it.
func Load(opts ...Option) (Config, error) {
	o := options{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		useEnv:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var sources []loader.Loader
	if o.path != "" {
		l, err := loader.ForPath(o.fs, o.path)
		if err != nil {
			return Config{}, err
		}
		sources = append(sources, requireFile{Loader: l, path: o.path})
	}
	if o.useEnv {
		sources = append(sources, loader.NewEnvLoader(o.envPrefix))
	}

	merged := make(map[string]any)
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// requireFile turns a missing file into ErrFileNotFound.
type requireFile struct {
	loader.Loader
	path string
}

func (r requireFile) Load() (map[string]any, error) {
	m, err := r.Loader.Load()
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, r.path)
	}
	return m, nil
}

// apply copies recognised settings from m onto c.
func (c *Config) apply(m map[string]any) error {
	if v, ok := lookup(m, "history.policy"); ok {
		s, err := asString("history.policy", v)
		if err != nil {
			return err
		}
		c.History.Policy = strings.ToLower(s)
	}
	if v, ok := lookup(m, "history.capacity"); ok {
		n, err := asInt("history.capacity", v)
		if err != nil {
			return err
		}
		c.History.Capacity = n
	}
	if v, ok := lookup(m, "logging.level"); ok {
		s, err := asString("logging.level", v)
		if err != nil {
			return err
		}
		c.Logging.Level = strings.ToLower(s)
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if !slices.Contains(storage.Names(), c.History.Policy) {
		return &ValidationError{
			Path:    "history.policy",
			Message: "must be one of " + strings.Join(storage.Names(), ", "),
			Value:   c.History.Policy,
			Code:    ErrCodeInvalidEnum,
		}
	}
	if c.History.Policy != storage.NameSingle &&
		(c.History.Capacity < 1 || c.History.Capacity > MaxCapacity) {
		return &ValidationError{
			Path:    "history.capacity",
			Message: fmt.Sprintf("must be between 1 and %d", MaxCapacity),
			Value:   c.History.Capacity,
			Code:    ErrCodeOutOfRange,
		}
	}
	if !slices.Contains(LogLevels, c.Logging.Level) {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be one of " + strings.Join(LogLevels, ", "),
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}
	return nil
}

// HistoryPolicy builds the storage policy described by h.
func HistoryPolicy[T any](h HistoryConfig) (storage.Policy[T], error) {
	return storage.Lookup[T](h.Policy, h.Capacity)
}

// SlogLevel returns the slog level for the configured logging level.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// lookup finds a dotted path in a nested map.
func lookup(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := m
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if current, ok = v.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

func asInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n <= math.MaxInt {
			return int(n), nil
		}
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "integer", Actual: fmt.Sprintf("%T", v)}
}
