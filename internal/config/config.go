// Package config assembles the application configuration from defaults,
// a .env file, command-line flags and environment variables, in that order
// of increasing priority, and validates the result.
package config

import (
	"flag"
	"fmt"
	"log"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings of the application.
type Config struct {
	RunAddr                    string `env:"SERVER_ADDRESS" validate:"hostname_port"`
	ShortURLBase               string `env:"BASE_URL" validate:"url"`
	LogLevel                   string `env:"LOG_LEVEL" validate:"loglevel"`
	AuthCookieName             string `env:"AUTH_COOKIE_NAME" validate:"required"`
	AuthCookieSigningSecretKey string `env:"AUTH_COOKIE_SIGNING_SECRET_KEY" validate:"required,base64url"`
}

var defaultConfig = Config{
	RunAddr:        ":8080",
	ShortURLBase:   "http://localhost:8080",
	LogLevel:       "info",
	AuthCookieName: "session",
	// Default key for local development only; override in production.
	AuthCookieSigningSecretKey: "c29tZXRoaW5nLXNlY3JldC1zb21ldGhpbmctc2VjcmV0",
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[fieldLevel.Field().String()]
}

func validate(values *Config) error {
	theValidator := validator.New()

	if err := theValidator.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}

	if err := theValidator.Struct(values); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	return nil
}

// InitOption customizes config initialization.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing disables command-line flag parsing.
// Tests use it to keep the global flag set untouched.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

func applyDefaults(values *Config, defaults Config) {
	*values = defaults
}

// New builds the configuration from defaults, .env, flags and environment.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := &Config{}
	applyDefaults(values, defaultConfig)

	if !options.disableFlagsParsing {
		flag.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
		flag.StringVar(&values.ShortURLBase, "b", values.ShortURLBase, "base address of the resulting shortened URL")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.StringVar(&values.AuthCookieName, "c", values.AuthCookieName, "name of the session cookie")
		flag.StringVar(&values.AuthCookieSigningSecretKey, "k", values.AuthCookieSigningSecretKey, "base64url-encoded session cookie signing key")
		flag.Parse()
	}

	if err := env.Parse(values); err != nil {
		return nil, err
	}

	if err := validate(values); err != nil {
		return nil, err
	}

	return values, nil
}
