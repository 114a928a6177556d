package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/logging"
	"github.com/smokyabdulrahman/salah/internal/server"
)

var flagServeAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve prayer times as a read-only JSON API",
		Long: "Start an HTTP server exposing /v1/times, /v1/schedule, /v1/hijri, /v1/events,\n" +
			"/v1/qibla, /v1/methods and /healthz. Config settings are the defaults for\n" +
			"every request; query parameters override them.",
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&flagServeAddr, "addr", server.DefaultAddr, "Listen address")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig()

	// The server logs JSON lines.
	if err := logging.Setup(cfg.LogLevel, true); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, log.Logger).ListenAndServe(ctx, flagServeAddr)
}
