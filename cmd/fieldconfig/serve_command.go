package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mrbreo/paradedb/api"
	"github.com/mrbreo/paradedb/internal/logging"
	"github.com/mrbreo/paradedb/internal/settings"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var configPath string
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the field and tokenizer builders over HTTP",
		Example: `  fieldconfig serve
  fieldconfig serve --port 9000
  fieldconfig serve --config /etc/fieldconfig.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(configPath, port)
			if err != nil {
				return err
			}

			logger, err := logging.New(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			gin.SetMode(s.GinMode)
			router := api.NewRouter(s, logger)

			srv := &http.Server{
				Addr:              ":" + s.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.WithField("port", s.Port).Info("Starting server")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("failed to start server: %w", err)
			case <-ctx.Done():
			}

			logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML settings file")
	cmd.Flags().StringVar(&port, "port", "", "Port to run the server on (overrides settings)")

	return cmd
}

// resolveSettings loads settings from configPath and applies the --port
// override on top of the file and environment.
func resolveSettings(configPath, port string) (*settings.Settings, error) {
	s, err := settings.Load(configPath)
	if err != nil {
		return nil, err
	}
	if port == "" {
		return s, nil
	}

	s.Port = port
	if problems := s.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid --port: %s", strings.Join(problems, "; "))
	}
	return s, nil
}
