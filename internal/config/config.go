package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

// KeyringService is the system keyring service name used for the database
// password when it is not supplied via environment.
const KeyringService = "reminderd"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Export   ExportConfig   `mapstructure:"export"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// ServerConfig represents the web UI server configuration
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Templates string `mapstructure:"templates"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NotifyConfig configures the notification sweep.
type NotifyConfig struct {
	// Sweep is the cron spec for the overdue notification sweep.
	Sweep string `mapstructure:"sweep"`
	// PhoneCommand, when set, is run to deliver phone-class re-notifications.
	// The reminder message is appended as the last argument.
	PhoneCommand []string `mapstructure:"phone_command"`
}

// ExportConfig configures the periodic CSV dump.
type ExportConfig struct {
	Path     string `mapstructure:"path"`
	Schedule string `mapstructure:"schedule"`
}

// Load loads configuration from environment variables and config files.
// Env files are tried in order: ~/.env/reminders first, then a local .env.
func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	for _, path := range []string{filepath.Join(home, ".env", "reminders"), ".env"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(home, ".config", "reminderd"))

	viper.SetDefault("database.host", getEnv("PG_HOST", "localhost"))
	viper.SetDefault("database.port", getEnvInt("PG_PORT", 5432))
	viper.SetDefault("database.user", getEnv("PG_USER", "postgres"))
	viper.SetDefault("database.password", getEnv("PG_PASSWORD", ""))
	viper.SetDefault("database.name", getEnv("PG_DATABASE", "reminders"))
	viper.SetDefault("database.ssl_mode", getEnv("PG_SSL_MODE", "disable"))
	viper.SetDefault("server.host", getEnv("SERVER_HOST", "localhost"))
	viper.SetDefault("server.port", getEnvInt("SERVER_PORT", 4567))
	viper.SetDefault("server.templates", "web/templates/*.html")
	viper.SetDefault("notify.sweep", "@every 1m")
	viper.SetDefault("export.path", filepath.Join(home, ".local", "var", "reminderd", "reminders.csv"))
	viper.SetDefault("export.schedule", "@hourly")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults and env vars cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Fall back to the system keyring when no password came from env/file.
	if cfg.Database.Password == "" {
		if pw, err := keyring.Get(KeyringService, cfg.Database.User); err == nil {
			cfg.Database.Password = pw
		}
	}

	return &cfg, nil
}

// SetPassword stores the database password for a user in the system keyring.
func SetPassword(user, password string) error {
	return keyring.Set(KeyringService, user, password)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err == nil {
			return n
		}
	}
	return defaultValue
}
