package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                string        `mapstructure:"ESTATE_ENV"`
	APIBaseURL         string        `mapstructure:"ESTATE_API_BASE_URL"`
	HTTPTimeout        time.Duration `mapstructure:"ESTATE_HTTP_TIMEOUT"`
	MediaPrefix        string        `mapstructure:"ESTATE_MEDIA_PREFIX"`
	CSRFCookieName     string        `mapstructure:"ESTATE_CSRF_COOKIE"`
	CSRFIssuePath      string        `mapstructure:"ESTATE_CSRF_PATH"`
	ListingCreatePaths []string      `mapstructure:"ESTATE_LISTING_CREATE_PATHS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("ESTATE_ENV", "production")
	viper.SetDefault("ESTATE_API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("ESTATE_HTTP_TIMEOUT", "15s")
	viper.SetDefault("ESTATE_MEDIA_PREFIX", "/media")
	viper.SetDefault("ESTATE_CSRF_COOKIE", "csrftoken")
	viper.SetDefault("ESTATE_CSRF_PATH", "/api/v1/auth/csrf/")
	// The canonical creation route is not stable; candidates are tried in
	// this order.
	viper.SetDefault("ESTATE_LISTING_CREATE_PATHS", []string{
		"/api/v1/listings/",
		"/api/v1/listings/create/",
		"/api/v1/create/",
	})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
