package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported vector store drivers.
const (
	DriverValkey = "valkey"
	DriverRedis  = "redis"
	DriverQdrant = "qdrant"
)

// Config holds the reviewsearch configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	SearchAPI   SearchAPIConfig   `yaml:"search_api"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	UI          UIConfig          `yaml:"ui"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds settings of the search page server.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`

	// APIKeys guard /api/*; empty disables auth.
	APIKeys []string `yaml:"api_keys"`
}

// SearchAPIConfig points at the external /search service.
type SearchAPIConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"` // 0 = wait indefinitely
}

// VectorStoreConfig holds the connector settings. Address is the only
// required value.
type VectorStoreConfig struct {
	Driver           string `yaml:"driver"` // valkey, redis, qdrant (default: valkey)
	Address          string `yaml:"address"`
	Password         string `yaml:"password"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// UIConfig holds search page behaviour.
type UIConfig struct {
	Language          string `yaml:"language"` // ko, en (default: ko)
	SessionTTLSec     int    `yaml:"session_ttl_sec"`
	SearchesPerMinute int    `yaml:"searches_per_minute"` // 0 = unlimited
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 3000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.SearchAPI.BaseURL == "" {
		c.SearchAPI.BaseURL = "http://localhost:8000"
	}
	if c.SearchAPI.TimeoutSec < 0 {
		c.SearchAPI.TimeoutSec = 0
	}
	if c.VectorStore.Driver == "" {
		c.VectorStore.Driver = DriverValkey
	}
	if c.VectorStore.ReadinessTimeout <= 0 {
		c.VectorStore.ReadinessTimeout = 10
	}
	if c.UI.Language == "" {
		c.UI.Language = "ko"
	}
	if c.UI.SessionTTLSec <= 0 {
		c.UI.SessionTTLSec = 1800
	}
	if c.UI.SearchesPerMinute < 0 {
		c.UI.SearchesPerMinute = 0
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	u, err := url.Parse(c.SearchAPI.BaseURL)
	if err != nil {
		return fmt.Errorf("search_api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("search_api.base_url must use http or https, got %q", c.SearchAPI.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("search_api.base_url must include a host")
	}
	switch c.VectorStore.Driver {
	case DriverValkey, DriverRedis, DriverQdrant:
		// ok
	default:
		return fmt.Errorf(
			"vector_store.driver must be %q, %q or %q, got %q",
			DriverValkey, DriverRedis, DriverQdrant, c.VectorStore.Driver,
		)
	}
	switch c.UI.Language {
	case "ko", "en":
		// ok
	default:
		return fmt.Errorf("ui.language must be \"ko\" or \"en\", got %q", c.UI.Language)
	}
	return nil
}

// Validate reports a missing address. Only commands that open the store
// call it; Config.Validate does not.
func (c *VectorStoreConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("vector_store.address is required")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// relative to the source file, for `go run` from another directory
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
