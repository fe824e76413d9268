package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Mail   MailConfig   `yaml:"mail" mapstructure:"mail"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port              int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins    []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	ContactRatePerMin int      `yaml:"contact_rate_per_min" mapstructure:"contact_rate_per_min"`
}

// MailConfig configures SMTP delivery and the background send queue.
type MailConfig struct {
	Host            string `yaml:"host" mapstructure:"host"`
	Port            int    `yaml:"port" mapstructure:"port"`
	Username        string `yaml:"username" mapstructure:"username"`
	Password        string `yaml:"password" mapstructure:"password"`
	From            string `yaml:"from" mapstructure:"from"`
	QueueSize       int    `yaml:"queue_size" mapstructure:"queue_size"`
	SendTimeoutSecs int    `yaml:"send_timeout_secs" mapstructure:"send_timeout_secs"`
}

// SearchConfig configures suggestion caching.
type SearchConfig struct {
	SuggestionTTLMins int `yaml:"suggestion_ttl_mins" mapstructure:"suggestion_ttl_mins"`
}

// CacheConfig configures the in-process content cache.
type CacheConfig struct {
	DefaultTTLMins      int `yaml:"default_ttl_mins" mapstructure:"default_ttl_mins"`
	CleanupIntervalMins int `yaml:"cleanup_interval_mins" mapstructure:"cleanup_interval_mins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AORBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "aorboweb.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"https://www.aorbotreks.com"})
	v.SetDefault("server.contact_rate_per_min", 5)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "hello@aorbotreks.com")
	v.SetDefault("mail.queue_size", 64)
	v.SetDefault("mail.send_timeout_secs", 30)
	v.SetDefault("search.suggestion_ttl_mins", 30)
	v.SetDefault("cache.default_ttl_mins", 10)
	v.SetDefault("cache.cleanup_interval_mins", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Mail.Host != "" && c.Mail.From == "" {
			problems = append(problems, "mail.from is required when mail.host is set")
		}
		if c.Mail.QueueSize < 1 {
			problems = append(problems, "mail.queue_size must be >= 1")
		}
		if c.Mail.SendTimeoutSecs < 1 {
			problems = append(problems, "mail.send_timeout_secs must be >= 1")
		}
	case "migrate", "import", "contacts":
		// Store settings only, checked below.
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
