package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/martijn/clubhouse/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web server",
	Long:  "Start the message-board web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		server := api.NewServer(
			cfg,
			services.Logger,
			services.AuthService,
			services.SessionService,
			services.PostService,
			services.MemberService,
		)

		// Start server in goroutine
		serverErr := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				serverErr <- err
			}
		}()

		// Wait for interrupt signal or server error
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErr:
			return fmt.Errorf("server error: %w", err)
		case sig := <-sigChan:
			services.Logger.Info("shutting down", zap.String("signal", sig.String()))
		}

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		services.Logger.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
