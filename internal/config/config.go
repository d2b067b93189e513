// Package config loads adminui settings from YAML, the environment and CLI flags.
//
// Precedence, lowest to highest: built-in defaults, ~/.adminui/config.yaml (or
// --config), a project-local .adminui.yaml overlay, ADMINUI_* environment
// variables, then flags applied by the CLI.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/adminui/internal/pagination"
)

// DefaultSource is the members document the admin table was built against.
const DefaultSource = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

// Defaults and environment variable names.
const (
	DefaultPageSize   = pagination.DefaultPageSize
	DefaultTimeout    = 30 * time.Second
	DefaultCacheTTL   = 3600
	defaultDirName    = ".adminui"
	defaultConfigName = "config.yaml"

	EnvSource    = "ADMINUI_SOURCE"
	EnvPageSize  = "ADMINUI_PAGE_SIZE"
	EnvLogLevel  = "ADMINUI_LOG_LEVEL"
	EnvLogFormat = "ADMINUI_LOG_FORMAT"
	EnvHome      = "ADMINUI_HOME"
)

// Validation errors.
var (
	ErrInvalidPageSize = errors.New("page_size must be >= 1")
	ErrInvalidTimeout  = errors.New("timeout must be > 0")
	ErrNoSource        = errors.New("at least one source is required")
	ErrInvalidCacheTTL = errors.New("cache ttl_seconds must be >= 0")
	ErrInvalidRequired = errors.New("required_version is not a valid constraint")
)

// Config is the full adminui configuration.
type Config struct {
	// Sources lists the member documents to load, in order. A single entry is
	// the common case; several are fetched concurrently and concatenated.
	Sources []string `yaml:"sources"`

	// PageSize is the number of records shown per page.
	PageSize int `yaml:"page_size"`

	// Timeout bounds the initial fetch.
	Timeout time.Duration `yaml:"timeout"`

	// Strict turns a failed load into an error instead of an empty table.
	Strict bool `yaml:"strict"`

	// RequiredVersion is a semver constraint, e.g. ">= 0.3.0", the running
	// binary must satisfy. Empty means any version.
	RequiredVersion string `yaml:"required_version"`

	Logging LoggingConfig `yaml:"logging"`
	Cache   CacheConfig   `yaml:"cache"`
	S3      S3Config      `yaml:"s3"`
}

// CacheConfig controls caching of fetched documents.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Directory  string `yaml:"directory"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// S3Config configures s3:// sources. An empty Region defers to the AWS
// environment (AWS_REGION, shared config profile).
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// New returns a Config populated with defaults.
func New() *Config {
	home := HomeDir()
	return &Config{
		Sources:  []string{DefaultSource},
		PageSize: DefaultPageSize,
		Timeout:  DefaultTimeout,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(home, "logs", "adminui.log"),
		},
		Cache: CacheConfig{
			Enabled:    false,
			Directory:  filepath.Join(home, "cache"),
			TTLSeconds: DefaultCacheTTL,
		},
	}
}

// HomeDir returns the adminui state directory ($ADMINUI_HOME or ~/.adminui).
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(userHome, defaultDirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(HomeDir(), defaultConfigName)
}

// Load reads the config file at path on top of the defaults, applies the
// process environment and validates the result. A missing file is not an
// error when path is the default location.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithProject(context.Background(), path, "", os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadWithProject reads the config file with a project-local overlay: when
// projectDir holds a .adminui.yaml file, its sections replace the matching
// sections of the loaded file. Environment overrides come from lookupEnv.
// The result is not validated, so callers can apply flag overrides first and
// call Validate last.
func LoadWithProject(
	ctx context.Context,
	path, projectDir string,
	lookupEnv func(string) (string, bool),
) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, unmarshalErr)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file yet: defaults apply.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyProjectOverlay(ctx, cfg, projectDir)

	if err = cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies ADMINUI_* overrides using lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvSource); ok && strings.TrimSpace(v) != "" {
		c.Sources = SplitSources(v)
	}
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.PageSize = n
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.PageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.Timeout)
	}
	if len(c.Sources) == 0 {
		return ErrNoSource
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheTTL, c.Cache.TTLSeconds)
	}
	if c.RequiredVersion != "" {
		if _, err := semver.NewConstraint(c.RequiredVersion); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidRequired, c.RequiredVersion, err)
		}
	}
	return nil
}

// SplitSources splits a comma separated source list, dropping blanks.
func SplitSources(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// globalConfig is the configuration for the running command.
var (
	globalConfig   *Config      //nolint:gochecknoglobals // Set once per CLI invocation
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig
)

// SetGlobalConfig stores cfg as the configuration of the running command.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the running command's configuration, or defaults
// when none has been loaded.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return New()
	}
	return globalConfig
}
