package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

func newCardCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	cmd.AddCommand(
		newCardAddCmd(a),
		newCardShowCmd(a),
		newCardUpdateCmd(a),
		newCardDeleteCmd(a),
	)

	return cmd
}

func newCardAddCmd(a *App) *cobra.Command {
	var desc string

	cmd := &cobra.Command{
		Use:   "add <list> [title]",
		Short: "Append a card to a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := locate(a.context(cmd), a, args[0], false)
			if err != nil {
				return err
			}
			title, err := titleArg(a, args[1:], "Card title")
			if err != nil {
				return err
			}
			in := contract.CreateCardInput{ListID: loc.List().ID, Title: title}
			if cmd.Flags().Changed("desc") {
				in.Description = &desc
			}
			_, err = perform(cmd, a, a.Actions.CreateCard, in, func(c *domain.Card) string {
				return fmt.Sprintf("Created card %s [%s] in %s", c.Title, formatter.ShortID(c.ID), loc.List().Title)
			})
			return err
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Card description")
	return cmd
}

func newCardShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <card>",
		Short: "Print a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			loc, err := locate(ctx, a, args[0], true)
			if err != nil {
				return err
			}
			card, err := fetch(ctx, a.Actions.GetCard, contract.GetCardInput{CardID: loc.Card().ID})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCard(card))
			return nil
		},
	}
}

func newCardUpdateCmd(a *App) *cobra.Command {
	var title, desc string

	cmd := &cobra.Command{
		Use:   "update <card>",
		Short: "Change a card's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := locate(a.context(cmd), a, args[0], true)
			if err != nil {
				return err
			}
			in := contract.UpdateCardInput{CardID: loc.Card().ID}
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				in.Description = &desc
			}
			_, err = perform(cmd, a, a.Actions.UpdateCard, in,
				func(c *domain.Card) string { return "Updated card " + c.Title })
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")
	return cmd
}

func newCardDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := locate(a.context(cmd), a, args[0], true)
			if err != nil {
				return err
			}
			_, err = perform(cmd, a, a.Actions.DeleteCard, contract.DeleteCardInput{CardID: loc.Card().ID},
				func(contract.Deleted) string { return "Deleted card " + loc.Card().Title })
			return err
		},
	}
}
