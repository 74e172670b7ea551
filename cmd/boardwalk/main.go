package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/app"
	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/cli"
	"github.com/alexanderramin/boardwalk/internal/config"
	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/httpapi"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.OpenDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	views := dialViews(ctx, cfg, log)
	svc := app.NewServices(database, views, log)
	local := app.NewLocalActions(svc, log)

	a := &cli.App{
		Config:  cfg,
		Log:     log,
		Actions: local,
		Local:   local,
		Members: svc.Members,
	}
	if cfg.Remote() {
		a.Actions = httpapi.NewClient(cfg.APIURL, cfg.Token, cfg.HTTPTimeout).Actions()
	}

	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// dialViews connects the snapshot cache when a redis url is configured and
// falls back to no caching when the server is unreachable.
func dialViews(ctx context.Context, cfg config.Config, log logrus.FieldLogger) cache.ViewCache {
	if cfg.RedisURL == "" {
		return cache.Noop{}
	}
	dialCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	client, err := cache.Dial(dialCtx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("board cache disabled")
		return cache.Noop{}
	}
	return cache.NewRedis(client, cfg.CacheTTL, log)
}
