package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

func newListCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the lists on a board",
	}

	cmd.AddCommand(
		newListAddCmd(a),
		newListRenameCmd(a),
		newListDeleteCmd(a),
	)

	return cmd
}

func newListAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <board> [title]",
		Short: "Append a list to a board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveBoardID(a.context(cmd), a, args[0])
			if err != nil {
				return err
			}
			title, err := titleArg(a, args[1:], "List title")
			if err != nil {
				return err
			}
			_, err = perform(cmd, a, a.Actions.CreateList, contract.CreateListInput{BoardID: id, Title: title},
				func(l *domain.List) string {
					return fmt.Sprintf("Created list %s [%s] at position %d", l.Title, formatter.ShortID(l.ID), l.Order+1)
				})
			return err
		},
	}
}

func newListRenameCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list> [title]",
		Short: "Rename a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := locate(a.context(cmd), a, args[0], false)
			if err != nil {
				return err
			}
			title, err := titleArg(a, args[1:], "New list title")
			if err != nil {
				return err
			}
			_, err = perform(cmd, a, a.Actions.UpdateList, contract.UpdateListInput{ListID: loc.List().ID, Title: title},
				func(l *domain.List) string { return "Renamed list to " + l.Title })
			return err
		},
	}
}

func newListDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list>",
		Short: "Delete a list and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := locate(a.context(cmd), a, args[0], false)
			if err != nil {
				return err
			}
			_, err = perform(cmd, a, a.Actions.DeleteList, contract.DeleteListInput{ListID: loc.List().ID},
				func(contract.Deleted) string { return "Deleted list " + loc.List().Title })
			return err
		},
	}
}
