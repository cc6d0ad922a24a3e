package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Output formats for decisions written by the CLI
const (
	FormatJSON = "json"
	FormatText = "text"
)

var validate = newValidator()

// Config holds all configuration for the router CLI
type Config struct {
	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Rule set configuration
	RulesFile string `env:"RULES_FILE" envDefault:"rules.yaml" validate:"required"`

	// Output configuration
	OutputFormat string `env:"OUTPUT_FORMAT" envDefault:"json" validate:"oneof=json text"`

	// Batch configuration
	FailFast     bool `env:"FAIL_FAST" envDefault:"false"`
	MaxLineBytes int  `env:"MAX_LINE_BYTES" envDefault:"1048576" validate:"gte=1024"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{LogLevel=%s, RulesFile=%s, OutputFormat=%s, FailFast=%v, MaxLineBytes=%d}",
		c.LogLevel,
		c.RulesFile,
		c.OutputFormat,
		c.FailFast,
		c.MaxLineBytes,
	)
}

// newValidator reports fields by their environment variable name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name, _, _ := strings.Cut(field.Tag.Get("env"), ","); name != "" {
			return name
		}
		return field.Name
	})
	return v
}
