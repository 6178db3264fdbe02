package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName names the config and data directories.
const AppName = "jdkswitch"

// Scopes of the Windows environment store.
const (
	ScopeSystem = "system"
	ScopeUser   = "user"
)

var varName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config holds the application configuration.
type Config struct {
	// HomeVar is the variable switches write the JDK path into. PATH refers
	// to it symbolically as %HomeVar%\bin.
	HomeVar string `mapstructure:"home_var" yaml:"home_var"`
	// Scope picks the machine (system) or per-user environment on Windows.
	Scope string `mapstructure:"scope" yaml:"scope"`
	// SearchPaths are extra vendor roots scanned like the built-in ones.
	SearchPaths []string `mapstructure:"search_paths" yaml:"search_paths"`
	// Sort orders the inventory by vendor then version.
	Sort bool `mapstructure:"sort" yaml:"sort"`
	// StoreFile backs the environment store where no registry exists.
	StoreFile string       `mapstructure:"store_file" yaml:"store_file"`
	Update    UpdateConfig `mapstructure:"update" yaml:"update"`

	path string
}

// UpdateConfig holds settings for the self-update feature.
type UpdateConfig struct {
	Enabled     bool      `mapstructure:"enabled" yaml:"enabled"`
	AutoCheck   bool      `mapstructure:"auto_check" yaml:"auto_check"`
	LastCheck   time.Time `mapstructure:"last_check" yaml:"last_check"`
	SkipVersion string    `mapstructure:"skip_version" yaml:"skip_version"`

	// Repository is the GitHub owner/name publishing releases. The updater
	// stays idle while it is empty.
	Repository string `mapstructure:"repository" yaml:"repository"`
}

// DefaultPath returns $XDG_CONFIG_HOME/jdkswitch/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

func defaultStoreFile() string {
	return filepath.Join(xdg.DataHome, AppName, "environment.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	v.SetEnvPrefix("JDKSWITCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("home_var", "JAVA_HOME")
	v.SetDefault("scope", ScopeSystem)
	v.SetDefault("search_paths", []string{})
	v.SetDefault("sort", false)
	v.SetDefault("store_file", defaultStoreFile())
	v.SetDefault("update.enabled", true)
	v.SetDefault("update.auto_check", true)
	v.SetDefault("update.repository", "")
	return v
}

// Load reads the configuration file. An explicit path must exist; with an
// empty path a missing file in the default location yields the defaults.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case path != "" && errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	cfg.path = v.ConfigFileUsed()
	if cfg.path == "" {
		cfg.path = DefaultPath()
	}
	cfg.SearchPaths = cleanPaths(cfg.SearchPaths)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside a switch.
func (c *Config) Validate() error {
	if !varName.MatchString(c.HomeVar) {
		return errors.Newf("home_var %q must be letters, digits, '_' or '-'", c.HomeVar)
	}
	if c.Scope != ScopeSystem && c.Scope != ScopeUser {
		return errors.Newf("scope %q must be %q or %q", c.Scope, ScopeSystem, ScopeUser)
	}
	return nil
}

// Path returns the file Save writes to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back as YAML.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "writing config")
}

// cleanPaths drops blanks and case-insensitive duplicates.
func cleanPaths(paths []string) []string {
	cleaned := make([]string, 0, len(paths))
	seen := make(map[string]bool)
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, p)
	}
	return cleaned
}
