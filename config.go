package xrdadmin

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"dario.cat/mergo"
	"github.com/hashicorp/go-envparse"
)

// Config holds the three environment-driven knobs this core recognizes:
// the connect-loop retry bound, the inter-attempt sleep, and the logger
// threshold. The full environment/configuration store is an external
// collaborator; this is the minimal concrete reader the connect loop and
// logger setup actually need.
type Config struct {
	FirstConnectMaxCnt int        // FirstConnectMaxCnt
	ReconnectTimeout   int        // ReconnectTimeout, seconds
	DebugLevel         slog.Level // XrdClientDebugLevel
}

// DefaultConfig returns the hard-coded defaults.
func DefaultConfig() Config {
	return Config{
		FirstConnectMaxCnt: DefaultFirstConnectMaxCnt,
		ReconnectTimeout:   DefaultReconnectTimeout,
		DebugLevel:         slog.LevelWarn,
	}
}

// LoadConfig merges environment variables (XrdClientDebugLevel,
// FirstConnectMaxCnt, ReconnectTimeout) over [DefaultConfig]. Unset or
// unparseable variables fall back to the default rather than failing Load,
// since the connect loop always needs a usable value.
func LoadConfig() Config {
	cfg := DefaultConfig()
	env := map[string]string{}
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				env[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	applyEnv(&cfg, env)
	return cfg
}

// LoadConfigFrom merges an envparse-formatted file (KEY=VALUE lines) over
// [DefaultConfig], ignoring the process environment. Used by tests.
func LoadConfigFrom(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	m, err := envparse.Parse(r)
	if err != nil {
		return Config{}, err
	}
	applyEnv(&cfg, m)
	return cfg, nil
}

func applyEnv(cfg *Config, env map[string]string) {
	override := Config{}
	hasOverride := false
	if v, ok := env["FirstConnectMaxCnt"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			override.FirstConnectMaxCnt = n
			hasOverride = true
		}
	}
	if v, ok := env["ReconnectTimeout"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			override.ReconnectTimeout = n
			hasOverride = true
		}
	}
	if hasOverride {
		_ = mergo.Merge(cfg, override, mergo.WithOverride)
	}
	// slog.LevelInfo is 0, which mergo treats as "unset", so the debug level
	// bypasses the merge and is assigned directly.
	if v, ok := env["XrdClientDebugLevel"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DebugLevel = debugLevelFromInt(n)
		}
	}
}

// debugLevelFromInt maps the XrdClientDebugLevel integer scale
// (0=none ... higher=more verbose) onto slog's levels.
func debugLevelFromInt(n int) slog.Level {
	switch {
	case n <= 0:
		return slog.LevelError
	case n == 1:
		return slog.LevelWarn
	case n == 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewLogger builds a [slog.Logger] at cfg's threshold; components derive
// their own loggers from it via With(...).
func NewLogger(cfg Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.DebugLevel}))
}
