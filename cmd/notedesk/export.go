package main

import (
	"github.com/spf13/cobra"

	apperrors "notedesk/internal/errors"
	"notedesk/internal/export"
)

func newExportCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "export",
		Short: "Export notes to PDF",
	}

	var includeSketches bool
	var title string
	noteCommand := &cobra.Command{
		Use:   "note NOTE_ID OUT.pdf",
		Short: "Export a single note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !export.IsExportAvailable() {
				return apperrors.New(apperrors.ErrCapabilityUnavailable, "pdf rendering is not available")
			}
			noteID, err := parseID(args[0], "note")
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			noteTitle := title
			if noteTitle == "" {
				note, err := a.repo.GetNote(noteID)
				if err != nil {
					return err
				}
				if note != nil {
					noteTitle = note.Title
				}
			}

			assembler := export.NewAssembler(a.repo, a.pages)
			blocks, err := assembler.NoteBlocks(noteID, noteTitle, includeSketches)
			if err != nil {
				return err
			}
			return newRenderer(a).Render(blocks, args[1])
		},
	}
	noteCommand.Flags().BoolVar(&includeSketches, "sketches", false, "include whiteboard pages")
	noteCommand.Flags().StringVar(&title, "title", "", "title shown for the note, defaults to the stored one")

	var notebookSketches bool
	notebookCommand := &cobra.Command{
		Use:   "notebook PROJECT_ID OUT.pdf",
		Short: "Export every note of a notebook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !export.IsExportAvailable() {
				return apperrors.New(apperrors.ErrCapabilityUnavailable, "pdf rendering is not available")
			}
			projectID, err := parseID(args[0], "notebook")
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			assembler := export.NewAssembler(a.repo, a.pages)
			blocks, err := assembler.NotebookBlocks(projectID, notebookSketches)
			if err != nil {
				return err
			}
			return newRenderer(a).Render(blocks, args[1])
		},
	}
	notebookCommand.Flags().BoolVar(&notebookSketches, "sketches", false, "include whiteboard pages")

	rootCommand.AddCommand(noteCommand, notebookCommand)
	return rootCommand
}

func newRenderer(a *app) *export.PDFRenderer {
	return export.NewPDFRenderer(a.cfg.Export.PageSize, a.cfg.Export.ImageWidth, a.cfg.Export.ImageHeight)
}
