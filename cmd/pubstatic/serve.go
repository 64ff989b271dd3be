package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pubstatic"
	"github.com/eringen/pubstatic/views"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live preview of the site",
	Long: `serve renders pages on request from an in-memory build. Changes under the
content directory invalidate the build; the next request rebuilds it. A
failed rebuild keeps serving the last good site.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := siteConfig
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		app := pubstatic.New(cfg, views.Default(), pubstatic.WithLogger(logger))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		select {
		case err := <-errc:
			app.Close()
			return err
		case <-ctx.Done():
			logger.Infof("shutting down")
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := app.Echo.Shutdown(shutdown)
			app.Close()
			return err
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides addr)")
	rootCmd.AddCommand(serveCmd)
}
