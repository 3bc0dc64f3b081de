package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds all application configuration
type Config struct {
	Bot            BotConfig
	Database       DatabaseConfig
	Probe          ProbeConfig
	MigrationsPath string
}

// BotConfig holds Telegram settings
type BotConfig struct {
	Token    string `validate:"required"`
	Password string `validate:"required"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   string `validate:"oneof=postgres sqlite3"`
	Host     string `validate:"required_if=Driver postgres"`
	Port     string `validate:"required_if=Driver postgres"`
	Name     string `validate:"required_if=Driver postgres"`
	User     string `validate:"required_if=Driver postgres"`
	Password string `validate:"required_if=Driver postgres"`
	SSLMode  string `validate:"oneof=disable require verify-ca verify-full"`
	Path     string `validate:"required_if=Driver sqlite3"`
}

// ProbeConfig holds the optional foreign database check
type ProbeConfig struct {
	DSN      string
	Table    string        `validate:"required_with=DSN"`
	Interval time.Duration
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"driver":         "db_driver",
	"db-path":        "db_path",
	"db-host":        "db_host",
	"db-name":        "db_name",
	"probe-dsn":      "probe_dsn",
	"probe-table":    "probe_table",
	"probe-interval": "probe_interval",
}

var validate = validator.New()

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return LoadFlags(nil)
}

// LoadFlags reads configuration from environment variables, letting any
// flag set on the command line take precedence
func LoadFlags(flags *pflag.FlagSet) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_name", "flashcards")
	v.SetDefault("db_user", "flashcards")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("probe_table", "cache_movie_most_popular")
	v.SetDefault("probe_interval", time.Duration(0))
	v.SetDefault("migrations_path", "file://migrations")
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Bot: BotConfig{
			Token:    v.GetString("bot_token"),
			Password: v.GetString("bot_password"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("db_driver"),
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			Name:     v.GetString("db_name"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			SSLMode:  v.GetString("db_sslmode"),
			Path:     v.GetString("db_path"),
		},
		Probe: ProbeConfig{
			DSN:      v.GetString("probe_dsn"),
			Table:    v.GetString("probe_table"),
			Interval: v.GetDuration("probe_interval"),
		},
		MigrationsPath: v.GetString("migrations_path"),
	}

	if err := validate.Struct(cfg.Database); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	if err := validate.Struct(cfg.Probe); err != nil {
		return nil, fmt.Errorf("invalid probe config: %w", err)
	}
	if cfg.Probe.Interval < 0 {
		return nil, fmt.Errorf("PROBE_INTERVAL cannot be negative")
	}

	return cfg, nil
}

// ValidateBot checks the settings only the Telegram bot needs
func (c *Config) ValidateBot() error {
	if err := validate.Struct(c.Bot); err != nil {
		return fmt.Errorf("invalid bot config (BOT_TOKEN and BOT_PASSWORD are required): %w", err)
	}
	if c.Database.Driver != DriverPostgres {
		return fmt.Errorf("bot requires DB_DRIVER=%s, got %q", DriverPostgres, c.Database.Driver)
	}
	return nil
}

// ProbeEnabled reports whether a foreign database is configured
func (c *Config) ProbeEnabled() bool {
	return c.Probe.DSN != ""
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.Path
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
