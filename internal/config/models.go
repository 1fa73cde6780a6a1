package config

import (
	"fmt"
	"time"
)

// WordListConfig names one word list and its pinned digest
type WordListConfig struct {
	File   string
	SHA256 string
}

// WordListsConfig represents where the phrase lists are read from
type WordListsConfig struct {
	// Dir is a directory on disk; empty means the embedded lists
	Dir    string
	Danger WordListConfig
	Safe   WordListConfig
}

// DomainsConfig represents the sender reputation tables
type DomainsConfig struct {
	Trusted    []string
	Suspicious []string
}

// CacheConfig represents the result cache configuration
type CacheConfig struct {
	Enabled          bool
	TTL              time.Duration
	CleanupFrequency time.Duration
}

// HeadersConfig names the headers added by the SMTP filter
type HeadersConfig struct {
	Score  string
	Tier   string
	Reason string
}

// RelayConfig is the next hop for accepted mail
type RelayConfig struct {
	Enabled bool
	Address string
}

// ServerConfig represents the filter front end configuration
type ServerConfig struct {
	FilterType     string
	ListenAddress  string
	BlockPhishing  bool
	BlockThreshold int
	Headers        HeadersConfig
	Relay          RelayConfig
	SubjectPrefix  string
	ModifySubject  bool
	RateLimit      float64
	RateBurst      int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// LoggingConfig represents the logger configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// GetWordLists returns the word list configuration
func (c *Config) GetWordLists() WordListsConfig {
	return WordListsConfig{
		Dir: c.GetString("wordlists.dir"),
		Danger: WordListConfig{
			File:   c.GetString("wordlists.danger.file"),
			SHA256: c.GetString("wordlists.danger.sha256"),
		},
		Safe: WordListConfig{
			File:   c.GetString("wordlists.safe.file"),
			SHA256: c.GetString("wordlists.safe.sha256"),
		},
	}
}

// PinnedDigests maps each configured list name to its expected digest
func (w WordListsConfig) PinnedDigests() map[string]string {
	return map[string]string{
		w.Danger.File: w.Danger.SHA256,
		w.Safe.File:   w.Safe.SHA256,
	}
}

// GetDomains returns the sender reputation tables
func (c *Config) GetDomains() DomainsConfig {
	return DomainsConfig{
		Trusted:    c.GetStringSlice("domains.trusted"),
		Suspicious: c.GetStringSlice("domains.suspicious"),
	}
}

// GetMaxInputBytes returns the largest email accepted for scanning
func (c *Config) GetMaxInputBytes() int {
	return c.GetInt("scan.max_input_bytes")
}

// GetCache returns the cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache TTL: %w", err)
	}
	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}
	return CacheConfig{
		Enabled:          c.GetBool("cache.enabled"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
	}, nil
}

// GetServer returns the front end configuration
func (c *Config) GetServer() (ServerConfig, error) {
	readTimeout, err := c.GetDuration("server.read_timeout")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server read timeout: %w", err)
	}
	writeTimeout, err := c.GetDuration("server.write_timeout")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server write timeout: %w", err)
	}
	return ServerConfig{
		FilterType:     c.GetString("server.filter_type"),
		ListenAddress:  c.GetString("server.listen_address"),
		BlockPhishing:  c.GetBool("server.block_phishing"),
		BlockThreshold: c.GetInt("server.block_threshold"),
		Headers: HeadersConfig{
			Score:  c.GetString("server.headers.score"),
			Tier:   c.GetString("server.headers.tier"),
			Reason: c.GetString("server.headers.reason"),
		},
		Relay: RelayConfig{
			Enabled: c.GetBool("server.relay.enabled"),
			Address: c.GetString("server.relay.address"),
		},
		SubjectPrefix: c.GetString("server.subject_prefix"),
		ModifySubject: c.GetBool("server.modify_subject"),
		RateLimit:     c.GetFloat64("server.rate_limit"),
		RateBurst:     c.GetInt("server.rate_burst"),
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
	}, nil
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}
