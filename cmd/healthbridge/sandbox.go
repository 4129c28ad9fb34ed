package main

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/sandbox"
)

func sandboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sandbox",
		Short: "Run the in-memory development backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			secret := app.cfg.SandboxJWTSecret
			if secret == "" {
				// Ephemeral secret: sessions do not survive a restart.
				buf := make([]byte, 32)
				if _, err := crypto_rand.Read(buf); err != nil {
					return fmt.Errorf("generating jwt secret: %w", err)
				}
				secret = hex.EncodeToString(buf)
			}

			srv := sandbox.New(sandbox.Options{
				JWTSecret: secret,
				Logger:    app.logger,
				Seed:      true,
			})

			addr := ":" + app.cfg.SandboxPort
			app.logger.Info().Str("addr", addr).Msg("sandbox listening")
			app.logger.Info().Msgf("log in with any phone and code %s", sandbox.DevVerificationCode)

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Echo.Shutdown(ctx)
		},
	}
}
