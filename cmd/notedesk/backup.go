package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notedesk/internal/backup"
	"notedesk/internal/config"
	"notedesk/internal/logging"
)

func newBackupCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "backup",
		Short: "Back up or restore all data",
	}

	var createPassword string
	createCommand := &cobra.Command{
		Use:   "create OUT.zip",
		Short: "Archive the store and all whiteboard pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			dataDir := a.cfg.DataDir
			// close the store handle so the archive sees a settled file
			a.close()

			if err := backup.Create(dataDir, args[0], createPassword); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", args[0])
			return nil
		},
	}

	createCommand.Flags().StringVar(&createPassword, "password", "", "encrypt the archive with this password")

	var restorePassword string
	restoreCommand := &cobra.Command{
		Use:   "restore IN.zip",
		Short: "Replace all data with an archive's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logging.Init(cfg.Log)

			if err := backup.Restore(args[0], cfg.DataDir, restorePassword); err != nil {
				return err
			}
			logging.L().Info("data restored", "archive", args[0], "data_dir", cfg.DataDir)

			// reopen to run migrations against the restored store
			a, err := openApp()
			if err != nil {
				return err
			}
			a.close()
			fmt.Fprintf(cmd.OutOrStdout(), "restored from %s\n", args[0])
			return nil
		},
	}

	restoreCommand.Flags().StringVar(&restorePassword, "password", "", "password the archive was encrypted with")

	rootCommand.AddCommand(createCommand, restoreCommand)
	return rootCommand
}
