package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gzhole/veritas/internal/gateway"
	"github.com/gzhole/veritas/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP inspection API",
	Long: `Start the HTTP API. The listen address comes from --addr, then the
VERITAS_ADDR environment variable, then server.addr in the config file
(default :8000). SIGINT or SIGTERM shuts the server down gracefully.

  veritas serve --addr 127.0.0.1:8000`,
	RunE: serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config and VERITAS_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	engine, infos, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	for _, info := range infos {
		logrus.WithFields(logrus.Fields{
			"pack":    info.Name,
			"rules":   info.RuleCount,
			"enabled": info.Enabled,
		}).Info("Rule pack found")
	}

	opts := []gateway.Option{gateway.WithCache(cfg.Cache.Size, cfg.Cache.TTL)}
	if cfg.Audit.Enabled {
		audit, err := openAuditLog(cfg)
		if err != nil {
			return err
		}
		defer audit.Close()
		opts = append(opts, gateway.WithAuditLogger(audit))
		logrus.WithField("path", cfg.Audit.Path).Info("Audit log enabled")
	}

	srv := server.New(cfg.Server, gateway.New(engine, opts...))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
