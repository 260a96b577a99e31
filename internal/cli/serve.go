package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/geolab/footing/internal/config"
	"github.com/geolab/footing/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sizing API over HTTP",
		Long: `Serve the sizing API over HTTP until interrupted.

Endpoints:
  POST /api/footing/design                  JSON input, JSON result
  POST /api/footing/report?format=&lang=    design document (md, pdf, text)
  GET  /healthz                             liveness and version

SIGHUP re-reads .footing/footing.yaml and applies the engine section to
later requests.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := deps.cfg()
	addr := cfg.Server.Addr
	if v := getStringFlag(cmd, "addr"); v != "" {
		addr = v
	}

	srv := server.New(server.Options{
		Addr:            addr,
		RatePerSecond:   cfg.Server.RatePerSecond,
		Burst:           cfg.Server.Burst,
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
		MaxIterations:   cfg.Engine.MaxIterations,
		ScaleStep:       cfg.Engine.ScaleStep,
		Language:        deps.language(),
		Logger:          deps.Logger,
	})
	if err := deps.Config.Watch(func(c config.Config) {
		srv.SetEngine(c.Engine.MaxIterations, c.Engine.ScaleStep)
	}); err != nil {
		return err
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go reloadOnSignal(cmd.Context(), hup, deps.Config, deps.Logger)

	return srv.ListenAndServe(cmd.Context())
}

// reloadOnSignal re-reads the configuration on every value from sig until
// ctx is done. A failed reload keeps the previous configuration.
func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, mgr *config.ConfigManager, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := mgr.Reload(); err != nil {
				logger.Error("config reload failed", "error", err)
				continue
			}
			logger.Info("config reloaded")
		}
	}
}
