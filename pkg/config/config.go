package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config is the process configuration. Exactly one of StoreURL and StoreDir
// selects the object-store backend; StoreDir wins when both are set.
type Config struct {
	StoreURL   string      `toml:"store_url"`
	StoreDir   string      `toml:"store_dir"`
	ListenAddr string      `toml:"listen_addr"`
	Limit      int         `toml:"limit"`
	Cache      CacheConfig `toml:"cache"`
}

// CacheConfig selects and tunes the resource cache.
type CacheConfig struct {
	// Backend is "memory", "redis" or "none".
	Backend       string   `toml:"backend"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	CatalogTTL    Duration `toml:"catalog_ttl"`
	CollectionTTL Duration `toml:"collection_ttl"`
	ShardTTL      Duration `toml:"shard_ttl"`
}

// Duration wraps time.Duration for TOML text (un)marshaling.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// GetDefaultConfig returns a config with built-in defaults and no store
// configured.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads the config file at configPath, falling back to defaults
// when the file does not exist.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8787"
	}
	if c.Limit <= 0 {
		c.Limit = 10
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.CatalogTTL.Duration == 0 {
		c.Cache.CatalogTTL = Duration{5 * time.Minute}
	}
	if c.Cache.CollectionTTL.Duration == 0 {
		c.Cache.CollectionTTL = Duration{5 * time.Minute}
	}
	if c.Cache.ShardTTL.Duration == 0 {
		c.Cache.ShardTTL = Duration{time.Hour}
	}
}

// SaveTemplateConfig writes the annotated sample config to configPath.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// GetConfigDir returns the configuration directory, honoring
// XDG_CONFIG_HOME.
func GetConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "overture-geocode")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return dir, nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
