package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.ListenAddr != ":8787" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.Limit != 10 {
		t.Errorf("Limit = %d", cfg.Limit)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Cache.CatalogTTL.Duration != 5*time.Minute {
		t.Errorf("CatalogTTL = %s", cfg.Cache.CatalogTTL)
	}
	if cfg.Cache.CollectionTTL.Duration != 5*time.Minute {
		t.Errorf("CollectionTTL = %s", cfg.Cache.CollectionTTL)
	}
	if cfg.Cache.ShardTTL.Duration != time.Hour {
		t.Errorf("ShardTTL = %s", cfg.Cache.ShardTTL)
	}
	if cfg.StoreURL != "" || cfg.StoreDir != "" {
		t.Errorf("default config should not select a store: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListenAddr != ":8787" || cfg.Cache.Backend != "memory" {
		t.Errorf("missing file should yield defaults: %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	content := `
store_url = "https://shards.example.com/geocode"
listen_addr = ":9000"
limit = 25

[cache]
backend = "redis"
redis_addr = "localhost:6379"
redis_db = 3
shard_ttl = "30m"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.StoreURL != "https://shards.example.com/geocode" {
		t.Errorf("StoreURL = %q", cfg.StoreURL)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.Limit != 25 {
		t.Errorf("Limit = %d", cfg.Limit)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 3 {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Cache.ShardTTL.Duration != 30*time.Minute {
		t.Errorf("ShardTTL = %s", cfg.Cache.ShardTTL)
	}
	// Unset TTLs still pick up defaults.
	if cfg.Cache.CatalogTTL.Duration != 5*time.Minute {
		t.Errorf("CatalogTTL = %s", cfg.Cache.CatalogTTL)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("store_url = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[cache]\nshard_ttl = \"not-a-duration\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for a bad duration")
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := SaveTemplateConfig(path); err != nil {
		t.Fatalf("SaveTemplateConfig: %v", err)
	}

	// The sample must itself be loadable.
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading saved template: %v", err)
	}
	if cfg.ListenAddr == "" {
		t.Errorf("template config missing defaults: %+v", cfg)
	}
}

func TestGetConfigDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	want := filepath.Join(dir, "overture-geocode")
	if got != want {
		t.Errorf("GetConfigDir = %q, want %q", got, want)
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("config dir not created: %v", err)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("parsed %s", d.Duration)
	}

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "1m30s" {
		t.Errorf("marshaled %q", text)
	}
}
