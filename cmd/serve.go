package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/nitro-cli/internal/config"
	"github.com/sells-group/nitro-cli/internal/metrics"
	"github.com/sells-group/nitro-cli/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		m := metrics.New()
		svc, err := initService(cfg, m)
		if err != nil {
			return err
		}
		sessions := session.NewRegistry(time.Duration(cfg.Server.SessionTTLMins) * time.Minute)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			return eris.Wrap(err, "server listen")
		}

		srv := &http.Server{
			Handler:           buildMux(svc, sessions, m, cfg.Server.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("reference_rows", svc.Table().Len()),
			zap.Bool("llm_enabled", svc.LLMEnabled()),
		)
		return runServer(ctx, srv, ln, shutdownTimeout(cfg.Server))
	},
}

// runServer serves on ln until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server serve")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server shutdown")
		}
		return nil
	})

	return g.Wait()
}

func shutdownTimeout(c config.ServerConfig) time.Duration {
	if c.ShutdownTimeoutSecs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
