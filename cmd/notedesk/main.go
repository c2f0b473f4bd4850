package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCommand := cobra.Command{
		Use:           "notedesk",
		Short:         "Notebook, whiteboard and todo storage with PDF export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	rootCommand.AddCommand(
		newProjectsCommand(),
		newNotesCommand(),
		newTodosCommand(),
		newExportCommand(),
		newBackupCommand(),
		newSettingsCommand(),
		newSweepCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "notedesk: %v\n", err)
		os.Exit(1)
	}
}
