package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/reorder"
)

func newMoveCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Reorder lists and cards",
	}

	cmd.AddCommand(
		newMoveListCmd(a),
		newMoveCardCmd(a),
	)

	return cmd
}

func newMoveListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <list> <position>",
		Short: "Move a list to a 1-based position on its board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := locate(a.context(cmd), a, args[0], false)
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[1], len(loc.board.Lists))
			if err != nil {
				return err
			}

			ctrl := reorder.NewController(loc.board.Board.ID, loc.board.Lists)
			req := ctrl.OnDragEnd(reorder.DropResult{
				DraggableID: loc.List().ID,
				Type:        reorder.DragList,
				Source:      reorder.Location{ContainerID: reorder.ListsContainer, Index: loc.list},
				Destination: &reorder.Location{ContainerID: reorder.ListsContainer, Index: pos},
			})
			if req == nil {
				a.notifier(cmd).Success("Already in place")
				return nil
			}

			title := loc.List().Title
			if _, err := perform(cmd, a, a.Actions.ReorderLists, *req.Lists,
				func(contract.ReorderConfirmation) string {
					return fmt.Sprintf("Moved list %s to position %d", title, pos+1)
				}); err != nil {
				return err
			}
			printMoved(cmd, loc.board.Board, ctrl)
			return nil
		},
	}
}

func newMoveCardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "card <card> <list> <position>",
		Short: "Move a card to a 1-based position in a list on the same board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := locate(a.context(cmd), a, args[0], true)
			if err != nil {
				return err
			}
			ids := make([]string, len(loc.board.Lists))
			for i, l := range loc.board.Lists {
				ids[i] = l.ID
			}
			dstID, err := matchID("list", args[1], ids)
			if err != nil {
				return err
			}
			var dst domain.List
			for _, l := range loc.board.Lists {
				if l.ID == dstID {
					dst = l
				}
			}

			limit := len(dst.Cards) + 1
			if dst.ID == loc.List().ID {
				limit = len(dst.Cards)
			}
			pos, err := parsePosition(args[2], limit)
			if err != nil {
				return err
			}

			card := loc.Card()
			ctrl := reorder.NewController(loc.board.Board.ID, loc.board.Lists)
			req := ctrl.OnDragEnd(reorder.DropResult{
				DraggableID: card.ID,
				Type:        reorder.DragCard,
				Source:      reorder.Location{ContainerID: loc.List().ID, Index: loc.card},
				Destination: &reorder.Location{ContainerID: dst.ID, Index: pos},
			})
			if req == nil {
				a.notifier(cmd).Success("Already in place")
				return nil
			}

			if _, err := perform(cmd, a, a.Actions.ReorderCards, *req.Cards,
				func(contract.ReorderConfirmation) string {
					return fmt.Sprintf("Moved card %s to %s, position %d", card.Title, dst.Title, pos+1)
				}); err != nil {
				return err
			}
			printMoved(cmd, loc.board.Board, ctrl)
			return nil
		},
	}
}

// parsePosition converts a 1-based position into an index below limit.
func parsePosition(raw string, limit int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("position must be a number, got %q", raw)
	}
	if n < 1 || n > limit {
		return 0, fmt.Errorf("position %d is out of range (1-%d)", n, limit)
	}
	return n - 1, nil
}

func printMoved(cmd *cobra.Command, board domain.Board, ctrl *reorder.Controller) {
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoard(&domain.BoardSnapshot{Board: board, Lists: ctrl.Lists()}))
}
