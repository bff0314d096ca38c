package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/port-sim/server"
)

var (
	serveAddr     string        // Listen address
	serveInterval time.Duration // Wall-clock time between steps
)

// serveCmd streams port runs to websocket clients
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve interactive port runs over websocket",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if serveInterval <= 0 {
			logrus.Fatalf("--interval must be positive, got %s", serveInterval)
		}
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := server.New(cfg, serveInterval).ListenAndServe(ctx, serveAddr); err != nil {
			logrus.Fatalf("server: %v", err)
		}
		logrus.Info("Server stopped.")
	},
}

func init() {
	registerConfigFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "Listen address")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", time.Second, "Wall-clock time between steps")

	rootCmd.AddCommand(serveCmd)
}
