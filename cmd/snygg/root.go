package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/snygg/internal/config"
	"github.com/alexisbeaulieu97/snygg/internal/logger"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/spec"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/stylesheet"
	"github.com/alexisbeaulieu97/snygg/internal/workspace"
)

type rootFlags struct {
	configPath string
}

// app carries what every subcommand needs once settings are loaded.
type app struct {
	v        *viper.Viper
	settings config.Settings
	log      *logger.Logger
	ws       *workspace.Workspace
	catalog  *spec.Catalog
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{v: viper.New(), catalog: spec.Default()}

	cmd := &cobra.Command{
		Use:           "snygg",
		Short:         "Snygg inspects and formats keyboard stylesheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Settings file (default .snygg.yaml in the working directory)")
	pf.String(config.KeyLevel, spec.LevelBasic.String(), "Property visibility level: basic, advanced or developer")
	pf.String(config.KeyLogLevel, "warn", "Log level: debug, info, warn or error")
	pf.Bool(config.KeyHumanLogs, true, "Write human readable logs instead of JSON")
	pf.String(config.KeyColor, config.ColorAuto, "Colored swatches: auto, always or never")
	for _, key := range []string{config.KeyLevel, config.KeyLogLevel, config.KeyHumanLogs, config.KeyColor} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newFmtCmd(a))
	cmd.AddCommand(newRulesCmd(a))
	cmd.AddCommand(newQueryCmd(a))
	cmd.AddCommand(newRenameCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command, flags *rootFlags) error {
	settings, err := config.Load(a.v, flags.configPath)
	if err != nil {
		return newCommandError("load settings", "reading configuration", err, "Check .snygg.yaml, SNYGG_* environment variables and flag values.")
	}
	a.settings = settings

	log, err := logger.New(logger.Options{
		Level:         settings.LogLevel,
		HumanReadable: settings.HumanLogs,
		Writer:        cmd.ErrOrStderr(),
		Component:     "cli",
	})
	if err != nil {
		return newCommandError("load settings", "creating logger", err, "Use one of debug, info, warn or error for --log-level.")
	}

	a.log = log.WithCorrelationID(logger.NewCorrelationID()).With("command", cmd.Name())
	a.ws = workspace.New(a.log, stylesheet.WithCatalog(a.catalog))
	return nil
}
