package cli

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/app"
	"github.com/alexanderramin/boardwalk/internal/auth"
	"github.com/alexanderramin/boardwalk/internal/config"
	"github.com/alexanderramin/boardwalk/internal/notify"
	"github.com/alexanderramin/boardwalk/internal/service"
)

// App holds everything CLI commands run against.
type App struct {
	Config config.Config
	Log    *logrus.Logger

	// Actions serve board commands; they are remote when Config.APIURL is set.
	Actions *app.Actions
	// Local always runs in-process and backs the serve command.
	Local   *app.Actions
	Members service.MembershipService

	// Notifier overrides the default writer on the command's streams.
	Notifier notify.Notifier

	IsInteractive func() bool
	// RunProgram runs a full-screen model; tests replace it.
	RunProgram func(m tea.Model, in io.Reader, out io.Writer) error
}

// ErrReported marks an error the command already showed to the user.
var ErrReported = errors.New("reported")

// NewRootCmd creates the top-level "boardwalk" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "boardwalk",
		Short:         "Kanban boards with drag-and-drop ordering",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(a),
		newOrgCmd(a),
		newTokenCmd(a),
		newBoardCmd(a),
		newListCmd(a),
		newCardCmd(a),
		newMoveCmd(a),
	)

	return root
}

// context returns the command context carrying the configured principal.
// Remote calls authenticate with the token instead.
func (a *App) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.Config.Remote() {
		return ctx
	}
	return auth.WithPrincipal(ctx, a.principal())
}

func (a *App) principal() auth.Principal {
	return a.Config.Principal()
}

func (a *App) notifier(cmd *cobra.Command) notify.Notifier {
	if a.Notifier != nil {
		return a.Notifier
	}
	return notify.Writer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() logrus.FieldLogger {
	if a.Log == nil {
		return logrus.StandardLogger()
	}
	return a.Log
}

func (a *App) runProgram(m tea.Model, in io.Reader, out io.Writer) error {
	if a.RunProgram != nil {
		return a.RunProgram(m, in, out)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}
