package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/vango-dev/hydrate/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "hydrate.json"

	// EnvPrefix prefixes environment overrides, e.g. HYDRATE_LOG_LEVEL.
	EnvPrefix = "HYDRATE"

	// DefaultAddr is the default address of the serve command.
	DefaultAddr = "localhost:7070"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "hydrate"

	// DefaultClaimAttr is the attribute carrying server-side claim stamps.
	DefaultClaimAttr = "data-claim"

	// DefaultDrainWarn is the number of re-entrant flush passes after which
	// the scheduler logs a warning.
	DefaultDrainWarn = 100
)

// Config represents the complete hydrate.json configuration.
type Config struct {
	// Debug enables goroutine affinity checks in the scheduler.
	Debug bool `mapstructure:"debug"`

	Log       LogConfig       `mapstructure:"log"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Serve     ServeConfig     `mapstructure:"serve"`
	Hydrate   HydrateConfig   `mapstructure:"hydrate"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is text or json.
	Format string `mapstructure:"format"`
}

// SchedulerConfig contains update scheduler settings.
type SchedulerConfig struct {
	// DrainWarnSegments logs a warning when one flush needs more passes
	// than this. Zero disables the warning.
	DrainWarnSegments int `mapstructure:"drainWarnSegments"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ServeConfig contains settings for the HTTP reorder service.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// HydrateConfig contains hydration settings.
type HydrateConfig struct {
	// ClaimAttr names the attribute the server writes claim stamps into.
	ClaimAttr string `mapstructure:"claimAttr"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Scheduler: SchedulerConfig{
			DrainWarnSegments: DefaultDrainWarn,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Serve: ServeConfig{
			Addr: DefaultAddr,
		},
		Hydrate: HydrateConfig{
			ClaimAttr: DefaultClaimAttr,
		},
	}
}

// setDefaults registers every key with v so environment overrides apply
// even when the file omits the key.
func setDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("scheduler.drainWarnSegments", d.Scheduler.DrainWarnSegments)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("hydrate.claimAttr", d.Hydrate.ClaimAttr)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	// HYDRATE_LOG_LEVEL for log.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from the specified directory.
// It looks for hydrate.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path, applying
// defaults and environment overrides.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("H102").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("H100").Wrap(err)
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.New("H100").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// LoadDefault returns the defaults with environment overrides applied. It is
// used when no configuration file exists.
func LoadDefault() (*Config, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("H100").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("H101").
			WithDetail(fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("H101").
			WithDetail(fmt.Sprintf("log.format %q is not one of text, json", c.Log.Format))
	}
	if c.Scheduler.DrainWarnSegments < 0 {
		return errors.New("H101").
			WithDetail("scheduler.drainWarnSegments must not be negative")
	}
	if c.Metrics.Enabled && !metricName.MatchString(c.Metrics.Namespace) {
		return errors.New("H101").
			WithDetail(fmt.Sprintf("metrics.namespace %q is not a valid metric name prefix", c.Metrics.Namespace))
	}
	if c.Serve.Addr == "" {
		return errors.New("H101").
			WithDetail("serve.addr must not be empty")
	}
	if c.Hydrate.ClaimAttr == "" {
		return errors.New("H101").
			WithDetail("hydrate.claimAttr must not be empty")
	}
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing hydrate.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("H102").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// Discover loads the nearest hydrate.json at or above dir, falling back to
// LoadDefault when there is none.
func Discover(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		if errors.HasCode(err, "H102") {
			return LoadDefault()
		}
		return nil, err
	}
	return Load(root)
}
