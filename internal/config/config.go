package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "CLUBSTATS_"
	fileEnvVar = "CLUBSTATS_CONFIG"
)

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:            "8080",
		LogLevel:        "info",
		DBName:          "club-stats.db",
		StatisticsTopic: "statistics-flushed",
		Cache:           CacheConfig{TTL: 15 * time.Second},
		Export: ExportConfig{
			Enabled:  true,
			Debounce: 30 * time.Second,
		},
		Inngest:         InngestConfig{FlushCron: "*/30 * * * *"},
		RefreshInterval: time.Minute,
		Preload:         true,
	}
}

// Load reads configuration in increasing precedence: defaults, the YAML file
// named by CLUBSTATS_CONFIG, then CLUBSTATS_ environment variables. A .env
// file, when present, is loaded into the environment first. Nested keys use a
// double underscore, e.g. CLUBSTATS_EXPORT__DEBOUNCE=10s.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	k := koanf.New(".")

	if path := os.Getenv(fileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return fmt.Errorf("%w: port must not be empty", ErrInvalidConfig)
	case c.DBName == "" && c.Turso.PrimaryURL == "":
		return fmt.Errorf("%w: db_name must not be empty", ErrInvalidConfig)
	case c.Cache.TTL <= 0:
		return fmt.Errorf("%w: cache.ttl must be positive", ErrInvalidConfig)
	case c.Export.Debounce <= 0:
		return fmt.Errorf("%w: export.debounce must be positive", ErrInvalidConfig)
	case c.Export.MaxWait < 0:
		return fmt.Errorf("%w: export.max_wait must not be negative", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SlackEnabled reports whether flushed batches should be posted to Slack.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// InngestEnabled reports whether scheduled jobs are served through Inngest.
func (c Config) InngestEnabled() bool {
	return c.Inngest.AppID != ""
}
