package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"notedesk/internal/db"
	apperrors "notedesk/internal/errors"
	"notedesk/internal/snapshot"
)

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrValidation, fmt.Sprintf("%s id must be a number", what))
	}
	return id, nil
}

func newNotesCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes",
	}

	var search string
	listCommand := &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List a notebook's notes, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], "notebook")
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			notes, err := a.repo.ListNotes(projectID, search)
			if err != nil {
				return err
			}
			for _, n := range notes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", n.ID, n.Title, n.Timestamp)
			}
			return nil
		},
	}
	listCommand.Flags().StringVar(&search, "search", "", "filter by title or content substring")

	createCommand := &cobra.Command{
		Use:   "create PROJECT_ID [TEXT]",
		Short: "Create a note, empty or from the given text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], "notebook")
			if err != nil {
				return err
			}
			content := db.DefaultNoteContent()
			if len(args) == 2 {
				content = snapshot.Encode(args[1], nil)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			id, err := a.repo.CreateNote(projectID, content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	showCommand := &cobra.Command{
		Use:   "show NOTE_ID",
		Short: "Print a note's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseID(args[0], "note")
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			content, err := a.repo.NoteContent(noteID)
			if err != nil {
				return err
			}
			if content == "" {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), snapshot.Decode(content).Text)
			return nil
		},
	}

	updateCommand := &cobra.Command{
		Use:   "update NOTE_ID TEXT",
		Short: "Replace a note's text, rederiving its title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseID(args[0], "note")
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.UpdateNote(noteID, snapshot.Encode(args[1], nil))
		},
	}

	deleteCommand := &cobra.Command{
		Use:   "delete NOTE_ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseID(args[0], "note")
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.DeleteNote(noteID)
		},
	}

	rootCommand.AddCommand(listCommand, createCommand, showCommand, updateCommand, deleteCommand)
	return rootCommand
}
