package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/auth"
)

func newTokenCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue API tokens",
	}
	cmd.AddCommand(newTokenIssueCmd(a))
	return cmd
}

func newTokenIssueCmd(a *App) *cobra.Command {
	var (
		p   auth.Principal
		ttl time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign an HS256 token for a user and organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Config.JWTSecret == "" {
				return errors.New("no jwt secret configured (set jwt_secret or BOARDWALK_JWT_SECRET)")
			}
			if !p.Complete() {
				return errors.New("--user and --org are required")
			}
			token, err := auth.IssueHS256([]byte(a.Config.JWTSecret), p, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	principalFlags(cmd.Flags(), &p, a.principal())
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
