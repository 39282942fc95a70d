package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wanderplan/internal/services"
	"wanderplan/pkg/logger"
)

type rootOptions struct {
	settingsPath string
	logLevel     string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "plannerctl",
		Short:         "Operate the itinerary planner from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "settings file (default $SETTINGS_FILE or config/local.json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")

	root.AddCommand(newSuggestCmd(opts))
	root.AddCommand(newBudgetCmd(opts))
	root.AddCommand(newSettingsCmd(opts))

	return root
}

func (o *rootOptions) logger() *zap.Logger {
	return logger.New(logger.Options{Level: o.logLevel, Format: "console", Output: "stderr"})
}

func (o *rootOptions) settings(log *zap.Logger) *services.SettingsService {
	path := o.settingsPath
	if path == "" {
		path = os.Getenv("SETTINGS_FILE")
	}
	return services.NewSettingsService(path, log)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
