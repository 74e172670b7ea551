package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/importer"
)

func newBoardCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardListCmd(a),
		newBoardAddCmd(a),
		newBoardShowCmd(a),
		newBoardRenameCmd(a),
		newBoardDeleteCmd(a),
		newBoardOpenCmd(a),
		newBoardImportCmd(a),
		newBoardExportCmd(a),
	)

	return cmd
}

func newBoardListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the organization's boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := perform(cmd, a, a.Actions.ListBoards, contract.ListBoardsInput{}, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoards(boards))
			return nil
		},
	}
}

func newBoardAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [title]",
		Short: "Create a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := titleArg(a, args, "Board title")
			if err != nil {
				return err
			}
			_, err = perform(cmd, a, a.Actions.CreateBoard, contract.CreateBoardInput{Title: title},
				func(b *domain.Board) string {
					return fmt.Sprintf("Created board %s [%s]", b.Title, formatter.ShortID(b.ID))
				})
			return err
		},
	}
}

func newBoardShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <board>",
		Short: "Print a board with its lists and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadBoard(a.context(cmd), a, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoard(snap))
			return nil
		},
	}
}

func newBoardRenameCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <board> [title]",
		Short: "Rename a board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveBoardID(a.context(cmd), a, args[0])
			if err != nil {
				return err
			}
			title, err := titleArg(a, args[1:], "New board title")
			if err != nil {
				return err
			}
			_, err = perform(cmd, a, a.Actions.UpdateBoard, contract.UpdateBoardInput{BoardID: id, Title: title},
				func(b *domain.Board) string { return "Renamed board to " + b.Title })
			return err
		},
	}
}

func newBoardDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a board with all its lists and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveBoardID(a.context(cmd), a, args[0])
			if err != nil {
				return err
			}
			_, err = perform(cmd, a, a.Actions.DeleteBoard, contract.DeleteBoardInput{BoardID: id},
				func(d contract.Deleted) string { return "Deleted board " + formatter.ShortID(d.ID) })
			return err
		},
	}
}

func newBoardOpenCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <board>",
		Short: "Open a board in the terminal and rearrange it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.RunProgram == nil && !a.interactive() {
				return fmt.Errorf("board open needs an interactive terminal")
			}
			ctx := a.context(cmd)
			id, err := resolveBoardID(ctx, a, args[0])
			if err != nil {
				return err
			}
			return a.runProgram(newBoardModel(ctx, a.Actions, id, a.logger()), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newBoardImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create a board from a YAML or JSON board file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading board file: %w", err)
			}
			_, err = perform(cmd, a, a.Actions.ImportBoard, *schema, func(snap *domain.BoardSnapshot) string {
				cards := 0
				for _, l := range snap.Lists {
					cards += len(l.Cards)
				}
				return fmt.Sprintf("Imported board %s [%s]: %d lists, %d cards",
					snap.Board.Title, formatter.ShortID(snap.Board.ID), len(snap.Lists), cards)
			})
			return err
		},
	}
}

func newBoardExportCmd(a *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <board>",
		Short: "Write a board as a YAML board file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadBoard(a.context(cmd), a, args[0])
			if err != nil {
				return err
			}
			data, err := importer.Marshal(importer.FromSnapshot(snap))
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing board file: %w", err)
			}
			a.notifier(cmd).Success("Exported " + snap.Board.Title + " to " + output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")
	return cmd
}
