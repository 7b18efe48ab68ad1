package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/radial-shell/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRoot          = "RADIAL_SHELL_ROOT"
	envCacheFile     = "RADIAL_SHELL_CACHE_FILE"
	envWatch         = "RADIAL_SHELL_WATCH"
	envMaxEntries    = "RADIAL_SHELL_MAX_ENTRIES"
	envCenterRadius  = "RADIAL_SHELL_CENTER_RADIUS"
	envRingThickness = "RADIAL_SHELL_RING_THICKNESS"
	envShowFooter    = "RADIAL_SHELL_FOOTER"
	envVerbose       = "RADIAL_SHELL_VERBOSE"
	envTrace         = "RADIAL_SHELL_TRACE"
	envLogFile       = "RADIAL_SHELL_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("radial-shell", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	root := fs.String("root", envOrDefault(env, envRoot, ""), "directory served by the filesystem provider (defaults to the home directory)")
	cacheFile := fs.String("cache-file", envOrDefault(env, envCacheFile, ""), "path to the SQLite listing cache (empty disables caching)")
	watch := fs.Bool("watch", envOrBool(env, envWatch, true), "invalidate cached listings when watched directories change")
	maxEntries := fs.Int("max-entries", envOrInt(env, envMaxEntries, 0), "cap on children shown per folder ring (0 = unlimited)")
	centerRadius := fs.Float64("center-radius", envOrFloat(env, envCenterRadius, 0), "close-zone radius in points (0 uses the default)")
	ringThickness := fs.Float64("ring-thickness", envOrFloat(env, envRingThickness, 0), "ring thickness in points (0 uses the default)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *maxEntries < 0 {
		return Config{}, fmt.Errorf("max-entries must be >= 0 (got %d)", *maxEntries)
	}
	if *centerRadius < 0 {
		return Config{}, fmt.Errorf("center-radius must be >= 0 (got %v)", *centerRadius)
	}
	if *ringThickness < 0 {
		return Config{}, fmt.Errorf("ring-thickness must be >= 0 (got %v)", *ringThickness)
	}

	cfg := Config{
		App: app.Config{
			Root:          *root,
			CacheFile:     *cacheFile,
			Watch:         *watch,
			MaxEntries:    *maxEntries,
			CenterRadius:  *centerRadius,
			RingThickness: *ringThickness,
			ShowFooter:    *footer,
			Verbose:       *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"root":          *root,
			"cacheFile":     *cacheFile,
			"watch":         strconv.FormatBool(*watch),
			"maxEntries":    strconv.Itoa(*maxEntries),
			"centerRadius":  strconv.FormatFloat(*centerRadius, 'f', -1, 64),
			"ringThickness": strconv.FormatFloat(*ringThickness, 'f', -1, 64),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// Validate rejects impossible configurations before startup.
func Validate(cfg Config) error {
	if cfg.App.Root != "" {
		info, err := os.Stat(cfg.App.Root)
		if err != nil {
			return fmt.Errorf("root %q: %w", cfg.App.Root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("root %q is not a directory", cfg.App.Root)
		}
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
