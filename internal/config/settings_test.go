package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/spec"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, Settings{Level: "basic", LogLevel: "warn", HumanLogs: true, Color: ColorAuto}, s)
	require.Equal(t, spec.LevelBasic, s.EditorLevel())
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snygg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: Developer\nlog-level: debug\ncolor: never\n"), 0o644))

	s, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "developer", s.Level)
	require.Equal(t, spec.LevelDeveloper, s.EditorLevel())
	require.Equal(t, "debug", s.LogLevel)
	require.Equal(t, ColorNever, s.Color)
}

func TestLoadEnvironmentAndFlags(t *testing.T) {
	t.Setenv("SNYGG_LOG_LEVEL", "error")
	t.Setenv("SNYGG_LEVEL", "advanced")
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyColor, ColorAuto, "")
	require.NoError(t, flags.Parse([]string{"--color=always"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag(KeyColor, flags.Lookup(KeyColor)))

	s, err := Load(v, "")
	require.NoError(t, err)
	require.Equal(t, "error", s.LogLevel)
	require.Equal(t, spec.LevelAdvanced, s.EditorLevel())
	require.Equal(t, ColorAlways, s.Color)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snygg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: expert\n"), 0o644))

	_, err := Load(viper.New(), path)
	var validationErr *snyggerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "level", validationErr.Field)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := Settings{Level: "basic", LogLevel: "info", Color: ColorNever}
	require.NoError(t, Validate(good))

	bad := good
	bad.Color = "sometimes"
	err := Validate(bad)
	var validationErr *snyggerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "color", validationErr.Field)
	require.Contains(t, validationErr.Message, "auto always never")
}
