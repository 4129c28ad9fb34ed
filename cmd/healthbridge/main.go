package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/config"
	"github.com/healthbridge/healthbridge/internal/platform/api"
	"github.com/healthbridge/healthbridge/internal/platform/device"
	"github.com/healthbridge/healthbridge/internal/platform/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthbridge",
		Short: "Healthbridge telehealth client",
	}

	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(encounterCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(labCmd())
	rootCmd.AddCommand(pharmacyCmd())
	rootCmd.AddCommand(referralsCmd())
	rootCmd.AddCommand(assistantCmd())
	rootCmd.AddCommand(adminCmd())
	rootCmd.AddCommand(videoCmd())
	rootCmd.AddCommand(messagesCmd())
	rootCmd.AddCommand(sandboxCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wiring every command needs.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	session session.Store
	api     *api.Client
	device  device.Capabilities
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	}

	store := session.NewFileStore(cfg.SessionPath())
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout(), session.TokenSource{Store: store}, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		session: store,
		api:     client,
		device:  device.Host{Logger: logger},
	}, nil
}

// printJSON renders command output as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}
