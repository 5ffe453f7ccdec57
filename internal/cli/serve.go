package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/api/router"
	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/go-club-seat-reservation/internal/worker"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var opts appOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the seat snapshot refresher",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.autoMigrate, "migrate", false, "apply database migrations before starting")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, opts appOptions) error {
	defer logger.Sync()

	a, err := buildApp(ctx, cfg, metrics.Init(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	var refresher *worker.SeatSnapshotRefresher
	if cfg.Booking.SnapshotRefreshInterval > 0 {
		refresher = worker.NewSeatSnapshotRefresher(a.seats, cfg.Booking.SnapshotRefreshInterval)
		go refresher.Start(ctx)
	}

	e := router.New(cfg, a.routerDeps())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("サーバー起動", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// シグナル待機
	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("サーバー起動エラー", zap.Error(serveErr))
	}

	logger.Info("サーバーをシャットダウンしています...")

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		return errors.Join(serveErr, err)
	}

	logger.Info("サーバーが正常にシャットダウンしました")
	return serveErr
}
