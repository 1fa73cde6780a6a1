package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gavinalvarezz/PhishBotAgent/wordlists"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	return NewWithFile("")
}

// NewWithFile creates a configuration instance. An empty path searches the
// default locations.
func NewWithFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/phishbot/")
		v.AddConfigPath("$HOME/.phishbot")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("PHISHBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Word list defaults point at the embedded lists
	v.SetDefault("wordlists.dir", "")
	v.SetDefault("wordlists.danger.file", wordlists.DangerFile)
	v.SetDefault("wordlists.danger.sha256", wordlists.DangerSHA256)
	v.SetDefault("wordlists.safe.file", wordlists.SafeFile)
	v.SetDefault("wordlists.safe.sha256", wordlists.SafeSHA256)

	// Sender reputation
	v.SetDefault("domains.trusted", []string{"amazon.com", "netflix.com", "microsoft.com", "fafsa.gov"})
	v.SetDefault("domains.suspicious", []string{
		"secure-payments-support.com",
		"netflix-support.biz",
		"account-alerts.org",
		"fasa-gov.com",
	})

	// Scan defaults
	v.SetDefault("scan.max_input_bytes", 1<<20)

	// Server defaults
	v.SetDefault("server.filter_type", "http")
	v.SetDefault("server.listen_address", "0.0.0.0:8025")
	v.SetDefault("server.block_threshold", 61)
	v.SetDefault("server.block_phishing", false)
	v.SetDefault("server.headers.score", "X-PhishBot-Score")
	v.SetDefault("server.headers.tier", "X-PhishBot-Tier")
	v.SetDefault("server.headers.reason", "X-PhishBot-Reason")
	v.SetDefault("server.relay.address", "localhost:10026")
	v.SetDefault("server.relay.enabled", true)
	v.SetDefault("server.subject_prefix", "[PHISHING?] ")
	v.SetDefault("server.modify_subject", false)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_frequency", "10m")

	// CLI defaults
	v.SetDefault("cli.json", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// Set overrides a value, used by command line flags
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
