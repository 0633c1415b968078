package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"focusboard/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, static string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and the board UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				app.cfg.Addr = addr
			}
			if cmd.Flags().Changed("static") {
				app.cfg.StaticDir = static
			}
			return runServer(cmd, app)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default from config, :8080)")
	cmd.Flags().StringVar(&static, "static", "", "Directory with the built frontend (default from config, web/dist)")
	return cmd
}

func runServer(cmd *cobra.Command, app *App) error {
	logger := app.logger
	logger.Info("starting focusboard",
		slog.String("backend", app.cfg.Storage.Backend),
		slog.String("static_dir", app.cfg.StaticDir))

	s, err := openSession(cmd.Context(), app)
	if err != nil {
		logger.Error("unable to open storage", slog.String("error", err.Error()))
		return err
	}
	defer s.Close()

	srv := server.New(s.board, logger, app.cfg.StaticDir)

	httpServer := &http.Server{
		Addr:    app.cfg.Addr,
		Handler: srv.Engine(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err, ok := <-errCh:
		if ok {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}
