package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/api"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/engine"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/metrics"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/report"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(rc *RootConfig) *cobra.Command {
	var (
		addr    string
		maxBars int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the indicator HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := rc.Config.Server
			if cmd.Flags().Changed("addr") {
				srv.Addr = addr
			}
			if cmd.Flags().Changed("max-bars") {
				srv.MaxBars = maxBars
			}
			if cmd.Flags().Changed("workers") {
				srv.Workers = workers
			}

			gin.SetMode(gin.ReleaseMode)
			m := metrics.New()
			eng := engine.New(rc.Logger, engine.WithObserver(m), engine.WithLimit(srv.Workers))
			h := api.NewHandler(eng, report.NewBuilder(nil), m, rc.Logger, srv.MaxBars)

			server := &http.Server{
				Addr:              srv.Addr,
				Handler:           api.NewRouter(h, m, rc.Logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rc.Logger.Info("listening", zap.String("addr", srv.Addr), zap.Int("max_bars", srv.MaxBars))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			rc.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().IntVar(&maxBars, "max-bars", 0, "Reject requests with more bars (0 = unlimited)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent indicator computations per request (0 = GOMAXPROCS)")

	return cmd
}
