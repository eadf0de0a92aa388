package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Token             string        `env:"TOKEN"`
	ClientID          string        `env:"CLIENT_ID"`
	GuildID           string        `env:"GUILD_ID"`
	KeepAliveAddr     string        `env:"KEEPALIVE_ADDR" envDefault:":3000"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	SelectionTTL      time.Duration `env:"SELECTION_TTL" envDefault:"0s"`
	ProvisionTimeout  time.Duration `env:"PROVISION_TIMEOUT" envDefault:"15s"`
	ChannelCreateRate float64       `env:"CHANNEL_CREATE_RATE" envDefault:"1"`
	CatalogFile       string        `env:"CATALOG_FILE"`
	TicketCategory    string        `env:"TICKET_CATEGORY" envDefault:"tickets"`
	TicketPrefix      string        `env:"TICKET_PREFIX" envDefault:"snowy"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(environ(os.Environ()))
}

// LoadFrom reads the configuration from the given variables. Values are
// trimmed, and blank values fall back to their defaults.
func LoadFrom(vars map[string]string) (Config, error) {
	trimmed := make(map[string]string, len(vars))
	for k, v := range vars {
		if v = strings.TrimSpace(v); v != "" {
			trimmed[k] = v
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: trimmed}); err != nil {
		return Config{}, domain.Configuration("parse env: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the bot cannot start without.
func (c Config) Validate() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "TOKEN")
	}
	if c.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if len(missing) > 0 {
		return domain.Configuration("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.ProvisionTimeout <= 0 {
		return domain.Configuration("PROVISION_TIMEOUT must be positive, got %s", c.ProvisionTimeout)
	}
	if c.SelectionTTL < 0 {
		return domain.Configuration("SELECTION_TTL must not be negative, got %s", c.SelectionTTL)
	}
	return nil
}

// UseRedis reports whether selections and locks should live in Redis.
func (c Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// String renders the configuration with secrets masked.
func (c Config) String() string {
	masked := c
	if masked.Token != "" {
		masked.Token = "***"
	}
	if masked.RedisPassword != "" {
		masked.RedisPassword = "***"
	}
	type plain Config
	return fmt.Sprintf("%+v", plain(masked))
}

func environ(kv []string) map[string]string {
	out := make(map[string]string, len(kv))
	for _, e := range kv {
		if k, v, ok := strings.Cut(e, "="); ok {
			out[k] = v
		}
	}
	return out
}
