package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "notedesk/internal/errors"
)

func newTodosCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "todos",
		Short: "Manage tasks",
	}

	listCommand := &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List a notebook's tasks, open ones first",
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

			todos, err := a.repo.ListTodos(projectID)
			if err != nil {
				return err
			}
			for _, todo := range todos {
				mark := " "
				if todo.IsDone {
					mark = "x"
				}
				due := todo.DueDate
				if due == "" {
					due = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s]\t%d\t%s\t%s\n", mark, todo.ID, todo.Task, due)
			}
			return nil
		},
	}

	var dueDate string
	addCommand := &cobra.Command{
		Use:   "add PROJECT_ID TASK",
		Short: "Add a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], "notebook")
			if err != nil {
				return err
			}
			task := strings.TrimSpace(args[1])
			if task == "" {
				return apperrors.New(apperrors.ErrValidation, "task text must not be empty")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			id, err := a.repo.CreateTodo(projectID, task, dueDate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	addCommand.Flags().StringVar(&dueDate, "due", "", "free-form due date")

	doneCommand := &cobra.Command{
		Use:   "done TODO_ID",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE:  toggleRunE(true),
	}

	undoneCommand := &cobra.Command{
		Use:   "undone TODO_ID",
		Short: "Reopen a task",
		Args:  cobra.ExactArgs(1),
		RunE:  toggleRunE(false),
	}

	deleteCommand := &cobra.Command{
		Use:   "delete TODO_ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todoID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.repo.DeleteTodo(todoID)
		},
	}

	rootCommand.AddCommand(listCommand, addCommand, doneCommand, undoneCommand, deleteCommand)
	return rootCommand
}

func toggleRunE(done bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		todoID, err := parseID(args[0], "task")
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()
		return a.repo.ToggleTodo(todoID, done)
	}
}
