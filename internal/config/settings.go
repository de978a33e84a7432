// Package config loads CLI settings from an optional file, SNYGG_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/spec"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

// Setting keys, shared by the config file, environment and flags.
const (
	KeyLevel     = "level"
	KeyLogLevel  = "log-level"
	KeyHumanLogs = "human-logs"
	KeyColor     = "color"

	EnvPrefix  = "SNYGG"
	ConfigName = ".snygg"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings are the resolved CLI options.
type Settings struct {
	Level     string `mapstructure:"level" validate:"required,snygg_level"`
	LogLevel  string `mapstructure:"log-level" validate:"required,oneof=debug info warn error"`
	HumanLogs bool   `mapstructure:"human-logs"`
	Color     string `mapstructure:"color" validate:"required,oneof=auto always never"`
}

// EditorLevel returns the parsed property visibility level.
func (s Settings) EditorLevel() spec.Level {
	level, err := spec.ParseLevel(s.Level)
	if err != nil {
		return spec.LevelBasic
	}
	return level
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("snygg_level", func(fl validator.FieldLevel) bool {
			_, err := spec.ParseLevel(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLevel, spec.LevelBasic.String())
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyHumanLogs, true)
	v.SetDefault(KeyColor, ColorAuto)
}

// Load resolves settings from v. When path is empty a .snygg.yaml in the
// working directory is read if present; an explicit path must exist.
func Load(v *viper.Viper, path string) (Settings, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, snyggerrors.NewValidationError("config", fmt.Sprintf("failed to read %s", path), err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, snyggerrors.NewValidationError("config", "failed to read config file", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, snyggerrors.NewValidationError("config", "failed to decode settings", err)
	}
	s.Level = strings.ToLower(strings.TrimSpace(s.Level))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.Color = strings.ToLower(strings.TrimSpace(s.Color))

	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks s field by field.
func Validate(s Settings) error {
	if err := validatorInstance().Struct(s); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		field := strings.ToLower(ve.Field())
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s (allowed: %s)", msg, ve.Param())
		}
		return snyggerrors.NewValidationError(field, msg, err)
	}
	return snyggerrors.NewValidationError("config", err.Error(), err)
}
