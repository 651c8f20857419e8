// Package config loads the plainsight command's settings from a TOML file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/plainsight"
	"github.com/chronos-tachyon/plainsight/internal/keystore"
)

// DefaultOrder is the n-gram order used for new keys.
const DefaultOrder = 4

// Config holds every setting of the plainsight command.
type Config struct {
	Store StoreConfig `toml:"store"`
	Codec CodecConfig `toml:"codec"`
	Log   LogConfig   `toml:"log"`
}

// StoreConfig configures the key store.
type StoreConfig struct {
	Path      string `toml:"path"`
	Quota     int64  `toml:"quota"`
	CacheSize int    `toml:"cache_size"`
}

// CodecConfig configures new keys and the codec.
type CodecConfig struct {
	Order        int `toml:"order"`
	MaxIdleSteps int `toml:"max_idle_steps"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Path:      defaultStorePath(),
			Quota:     keystore.DefaultQuota,
			CacheSize: keystore.DefaultCacheSize,
		},
		Codec: CodecConfig{
			Order:        DefaultOrder,
			MaxIdleSteps: plainsight.DefaultMaxIdleSteps,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path on top of Default.  Unknown keys are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: load %q", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, errors.Errorf("config: %q: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.WithMessagef(err, "config: %q", path)
	}
	return cfg, nil
}

// Validate checks that every setting is in range.
func (cfg Config) Validate() error {
	if cfg.Store.Path == "" {
		return errors.New("store.path must be set")
	}
	if cfg.Store.Quota <= 0 {
		return errors.Errorf("store.quota must be positive, got %d", cfg.Store.Quota)
	}
	if cfg.Store.CacheSize <= 0 {
		return errors.Errorf("store.cache_size must be positive, got %d", cfg.Store.CacheSize)
	}
	if cfg.Codec.Order < 1 {
		return errors.Errorf("codec.order must be positive, got %d", cfg.Codec.Order)
	}
	if cfg.Codec.MaxIdleSteps < 1 {
		return errors.Errorf("codec.max_idle_steps must be positive, got %d", cfg.Codec.MaxIdleSteps)
	}
	if _, err := cfg.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (cfg Config) LogLevel() (log15.Lvl, error) {
	lvl, err := log15.LvlFromString(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return 0, errors.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	return lvl, nil
}

// StoreOptions returns the keystore options for this configuration.
func (cfg Config) StoreOptions(logger log15.Logger) keystore.Options {
	return keystore.Options{
		Quota:     cfg.Store.Quota,
		CacheSize: cfg.Store.CacheSize,
		Logger:    logger,
	}
}

func defaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "plainsight", "keys")
	}
	return ".plainsight-keys"
}
