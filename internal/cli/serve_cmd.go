package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/boardwalk/internal/auth"
	"github.com/alexanderramin/boardwalk/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verifier, err := a.verifier()
			if err != nil {
				return err
			}
			if a.Log != nil {
				a.Log.SetFormatter(&logrus.JSONFormatter{})
			}
			log := a.logger()
			e := httpapi.New(a.Local, verifier, log)

			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", addr).Info("api listening")
				errCh <- e.Start(addr)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			log.Info("api shutting down")
			return e.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", a.Config.Addr, "Listen address")
	return cmd
}

func (a *App) verifier() (*auth.Verifier, error) {
	switch {
	case a.Config.JWKSURL != "":
		jwks, err := auth.FetchJWKS(a.Config.JWKSURL, time.Hour)
		if err != nil {
			return nil, err
		}
		return auth.NewJWKSVerifier(jwks), nil
	case a.Config.JWTSecret != "":
		return auth.NewHS256Verifier([]byte(a.Config.JWTSecret)), nil
	default:
		return nil, errors.New("serve needs jwt_secret or jwks_url")
	}
}
