package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "notedesk/internal/errors"
)

func newProjectsCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "projects",
		Short: "Manage notebooks",
	}

	var search string
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List notebooks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			projects, err := a.repo.ListProjects(search)
			if err != nil {
				return err
			}
			for _, p := range projects {
				lock := ""
				if p.Locked() {
					lock = " [locked]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s%s\n", p.ID, p.Name, p.CreatedAt, lock)
			}
			return nil
		},
	}
	listCommand.Flags().StringVar(&search, "search", "", "filter by name or description substring")

	createCommand := &cobra.Command{
		Use:   "create NAME [DESCRIPTION]",
		Short: "Create a notebook",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return apperrors.New(apperrors.ErrValidation, "notebook name must not be empty")
			}
			description := ""
			if len(args) == 2 {
				description = args[1]
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			id, err := a.repo.CreateProject(args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	updateCommand := &cobra.Command{
		Use:   "update ID NAME [DESCRIPTION]",
		Short: "Rename a notebook or change its description",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return apperrors.New(apperrors.ErrValidation, "notebook id must be a number")
			}
			if args[1] == "" {
				return apperrors.New(apperrors.ErrValidation, "notebook name must not be empty")
			}
			description := ""
			if len(args) == 3 {
				description = args[2]
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.UpdateProject(id, args[1], description)
		},
	}

	deleteCommand := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a notebook and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return apperrors.New(apperrors.ErrValidation, "notebook id must be a number")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.DeleteProject(id)
		},
	}

	lockCommand := &cobra.Command{
		Use:   "lock ID PASSWORD",
		Short: "Set a notebook password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return apperrors.New(apperrors.ErrValidation, "notebook id must be a number")
			}
			if args[1] == "" {
				return apperrors.New(apperrors.ErrValidation, "password must not be empty")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.SetProjectPassword(id, args[1])
		},
	}

	unlockCommand := &cobra.Command{
		Use:   "unlock ID",
		Short: "Remove a notebook password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return apperrors.New(apperrors.ErrValidation, "notebook id must be a number")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.SetProjectPassword(id, "")
		},
	}

	var password string
	openCommand := &cobra.Command{
		Use:   "open ID",
		Short: "Open a notebook, prompting the password gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return apperrors.New(apperrors.ErrValidation, "notebook id must be a number")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := authorizeProject(a.repo, id, password); err != nil {
				return err
			}
			project, err := a.repo.GetProject(id)
			if err != nil {
				return err
			}
			if project == nil {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", project.ID, project.Name, project.Description)
			return nil
		},
	}
	openCommand.Flags().StringVar(&password, "password", "", "notebook password")

	rootCommand.AddCommand(listCommand, createCommand, updateCommand, deleteCommand, lockCommand, unlockCommand, openCommand)
	return rootCommand
}
