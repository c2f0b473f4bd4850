package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "settings",
		Short: "Read and write application settings",
	}

	getCommand := &cobra.Command{
		Use:   "get KEY",
		Short: "Print a setting, empty if unset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			value, err := a.repo.Setting(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	setCommand := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.SetSetting(args[0], args[1])
		},
	}

	rootCommand.AddCommand(getCommand, setCommand)
	return rootCommand
}
