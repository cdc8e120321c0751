package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FolioPath string `yaml:"folio_path" validate:"required_without=Translate"`
	Inning    string `yaml:"inning"`
	Translate string `yaml:"-"`

	LogFormat       string `yaml:"log_format" validate:"oneof=text json"`
	LogLevel        string `yaml:"log_level" validate:"oneof=debug info warn error"`
	HealthcheckPort int    `yaml:"healthcheck_port" validate:"gte=0,lte=65535"`
}

// DefaultConfig returns the configuration used before any file or flag is
// applied.
func DefaultConfig() Config {
	return Config{
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// LoadConfigFile overlays the YAML file at path onto cfg. Unknown keys are
// rejected.
func LoadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validate.Struct(cfg); err != nil {
		return nil, formatValidationError(err)
	}
	return &cfg, nil
}

func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		switch e.Tag() {
		case "required_without":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be between 0 and 65535", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
