package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the label web server",
	Long: `Start the HTTP server with the label form, label images, print PDFs, the
JSON API and Prometheus metrics on /metrics.`,
	RunE: runServe,
}

var (
	serveAddr        string
	serveRenderLimit int
)

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default: server.addr from config)")
	serveCmd.Flags().IntVar(&serveRenderLimit, "render-limit", 0, "Maximum concurrent label renders (default: number of CPUs)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	addr := serveAddr
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	srv := server.New(c.Generator, c.Renderer,
		server.WithLogger(c.Logger.With("component", "http")),
		server.WithRenderLimit(serveRenderLimit),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.Info("Serving labels on %s (store: %s)", addr, c.Config.Store.Driver)

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return err
	}
	ui.Success("Server stopped")
	return nil
}
