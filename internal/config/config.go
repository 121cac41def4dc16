package config

import (
	"errors"
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	App     AppConfig     `mapstructure:"app"`
	Weather WeatherConfig `mapstructure:"weather"`
	Output  OutputConfig  `mapstructure:"output"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

type APIConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts" validate:"lte=5"`
}

type AppConfig struct {
	Language string `mapstructure:"language" validate:"required,language"`
	DarkMode bool   `mapstructure:"dark_mode"`
}

type WeatherConfig struct {
	IconBaseURL string `mapstructure:"icon_base_url" validate:"required,url"`
	// IconCacheDirectory enables downloading icons when set.
	IconCacheDirectory string `mapstructure:"icon_cache_directory"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=text json yaml"`
}

type TUIConfig struct {
	LogFile string `mapstructure:"log_file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/kisan")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("api.max_retry_attempts", 0)
	v.SetDefault("app.language", "en")
	v.SetDefault("app.dark_mode", false)
	v.SetDefault("weather.icon_base_url", "http://openweathermap.org/img/wn")
	v.SetDefault("weather.icon_cache_directory", "")
	v.SetDefault("output.format", "text")
	v.SetDefault("tui.log_file", "")

	if err := v.BindEnv("api.base_url", "KISAN_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind KISAN_API_BASE_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
