package config

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for the application.
type Config struct {
	Port            string        `koanf:"port"`
	LogLevel        string        `koanf:"log_level"`
	DBName          string        `koanf:"db_name"`
	Turso           TursoConfig   `koanf:"turso"`
	ProjectID       string        `koanf:"project_id"`
	StatisticsTopic string        `koanf:"statistics_topic"`
	Slack           SlackConfig   `koanf:"slack"`
	Cache           CacheConfig   `koanf:"cache"`
	Export          ExportConfig  `koanf:"export"`
	Inngest         InngestConfig `koanf:"inngest"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	Preload         bool          `koanf:"preload"`
}

type TursoConfig struct {
	PrimaryURL string `koanf:"primary_url"`
	AuthToken  string `koanf:"auth_token"`
}

type SlackConfig struct {
	Token         string `koanf:"token"`
	ChannelID     string `koanf:"channel_id"`
	SigningSecret string `koanf:"signing_secret"`
}

type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type ExportConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Debounce time.Duration `koanf:"debounce"`
	MaxWait  time.Duration `koanf:"max_wait"`
}

type InngestConfig struct {
	AppID      string `koanf:"app_id"`
	SigningKey string `koanf:"signing_key"`
	EventKey   string `koanf:"event_key"`
	FlushCron  string `koanf:"flush_cron"`
	Dev        bool   `koanf:"dev"`
}
