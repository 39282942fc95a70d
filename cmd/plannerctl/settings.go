package main

import (
	"github.com/spf13/cobra"

	"wanderplan/internal/services"
)

func newSettingsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or edit the runtime settings store",
	}
	cmd.AddCommand(newSettingsGetCmd(root))
	cmd.AddCommand(newSettingsSetCmd(root))
	return cmd
}

func newSettingsGetCmd(root *rootOptions) *cobra.Command {
	var reveal bool

	c := &cobra.Command{
		Use:   "get",
		Short: "Print the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := root.settings(root.logger())

			var (
				settings map[string]interface{}
				err      error
			)
			if reveal {
				settings, err = svc.GetSettings()
			} else {
				settings, err = svc.GetMaskedSettings()
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), settings)
		},
	}
	c.Flags().BoolVar(&reveal, "reveal", false, "print API keys unmasked")
	return c
}

func newSettingsSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY=VALUE [KEY=VALUE...]",
		Short: "Persist one or more settings; an empty VALUE removes the key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := map[string]interface{}{}
			for _, pair := range args {
				kv, err := services.ParseSettingAssignment(pair)
				if err != nil {
					return err
				}
				for k, v := range kv {
					update[k] = v
				}
			}

			svc := root.settings(root.logger())
			if _, err := svc.UpdateSettings(update); err != nil {
				return err
			}
			settings, err := svc.GetMaskedSettings()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), settings)
		},
	}
}
