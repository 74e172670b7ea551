package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
	"github.com/alexanderramin/boardwalk/internal/contract"
)

func newOrgCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage organization membership on the local database",
	}

	cmd.AddCommand(
		newOrgAddMemberCmd(a),
		newOrgMembersCmd(a),
	)

	return cmd
}

func newOrgAddMemberCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-member <org> <user>",
		Short: "Grant a user access to an organization's boards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.Members.AddMember(cmd.Context(), contract.AddMemberInput{OrgID: args[0], UserID: args[1]})
			var ae *contract.ActionError
			if errors.As(err, &ae) && len(ae.Fields) > 0 {
				a.notifier(cmd).Error("Invalid input")
				fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatFieldErrors(ae.Fields))
				return ErrReported
			}
			if err != nil {
				return err
			}
			a.notifier(cmd).Success(fmt.Sprintf("Added %s to %s", m.UserID, m.OrgID))
			return nil
		},
	}
}

func newOrgMembersCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "members <org>",
		Short: "List an organization's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := a.Members.ListMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Muted("No members in "+args[0]))
				return nil
			}
			rows := make([][]string, len(members))
			for i, m := range members {
				rows[i] = []string{m.UserID, m.CreatedAt.Format("2006-01-02")}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"USER", "ADDED"}, rows))
			return nil
		},
	}
}
