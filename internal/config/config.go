package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Exchange Exchange `mapstructure:"exchange"`
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Seed     Seed     `mapstructure:"seed"`
}

// Exchange holds the exchange API endpoint and the default credential pair.
// Credentials are configured explicitly here; nothing in the core reads the
// process environment directly.
type Exchange struct {
	BaseURL        string  `mapstructure:"base_url"`
	APIVersion     string  `mapstructure:"api_version"`
	PublicKey      string  `mapstructure:"public_key"`
	SecretKey      string  `mapstructure:"secret_key"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Seed describes the records created on first start: the exchange row, one
// trade profile bound to the configured key pair, and the tracked pairs.
type Seed struct {
	ExchangeName string   `mapstructure:"exchange_name"`
	ProfileName  string   `mapstructure:"profile_name"`
	UserID       uint     `mapstructure:"user_id"`
	Pairs        []string `mapstructure:"pairs"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("exchange.base_url", "https://api.exmo.me/")
	viper.SetDefault("exchange.api_version", "v1")
	viper.SetDefault("exchange.rate_limit", 10) // requests per second
	viper.SetDefault("exchange.rate_limit_burst", 5)
	viper.SetDefault("exchange.timeout_seconds", 10)
	viper.SetDefault("database.dsn", "terminal.db")
	viper.SetDefault("seed.exchange_name", "Exmo")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
