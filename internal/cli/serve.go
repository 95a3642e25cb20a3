package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/api"
	"github.com/litescript/ls-almanac/internal/store"
)

func newServeCommand(opts *RootOptions) *cobra.Command {
	var (
		addr string
		db   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve almanac readings as JSON over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := opts.log()

			var hopts []api.Option
			if db != "" {
				s, err := store.Open(ctx, store.DefaultConfig(db), logger)
				if err != nil {
					return err
				}
				defer s.Close()
				if _, err := s.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate %s: %w", db, err)
				}
				hopts = append(hopts, api.WithStore(s))
			}

			h := api.NewHandlers(a, p.Name, logger, hopts...)
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewRouter(h, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return serve(ctx, srv, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&db, "db", "", "cache day readings in this SQLite database")
	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
