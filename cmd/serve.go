package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/hexviz/internal/dataset"
	"github.com/gridsight/hexviz/internal/viewer"
)

var (
	servePort     int
	serveSnapshot string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive map",
	Long:  "Starts an HTTP server with the map page at / and the layer payload at /api/layer.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var view *viewer.View
		if serveSnapshot != "" {
			records, err := loadRecords(ctx, serveSnapshot)
			if err != nil {
				return err
			}
			view = viewer.NewView(nil)
			view.SetRecords(records)
		} else {
			view = viewer.NewView(dataset.NewLoader(cfg.Dataset.Source, &http.Client{Timeout: cfg.Dataset.Timeout()}))
			// Load on mount rather than on first request.
			view.Load(ctx)
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port()),
			Handler:           viewer.NewServer(view, cfg.Map).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("state", string(view.State())),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func port() int {
	if servePort != 0 {
		return servePort
	}
	return cfg.Server.Port
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveSnapshot, "snapshot", "", "serve from a stored snapshot instead of the CSV source")
	rootCmd.AddCommand(serveCmd)
}
