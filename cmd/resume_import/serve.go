package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/locale"
	"github.com/jonathan/resume-importer/internal/server"
)

var (
	servePort       int
	serveLocale     string
	serveLocaleFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes POST /parse, GET /locales and GET /health.

The port defaults to PORT, then 8080. Rate limits are read from the RATE_LIMIT_*
environment variables.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default PORT or 8080)")
	serveCmd.Flags().StringVarP(&serveLocale, "locale", "l", "", "Locale used when a request names none")
	serveCmd.Flags().StringVar(&serveLocaleFile, "locale-file", "", "Custom locale YAML file to serve alongside the embedded locales")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	defaults := config.Defaults()
	cfg := server.Config{
		Port:          defaults.Port,
		DefaultLocale: defaults.Locale,
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveLocale != "" {
		cfg.DefaultLocale = serveLocale
	}
	if serveLocaleFile != "" {
		loc, err := locale.LoadFile(serveLocaleFile)
		if err != nil {
			return err
		}
		cfg.Locales = []*locale.Locale{loc}
		if serveLocale == "" {
			cfg.DefaultLocale = loc.Name
		}
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)
	cfg.Logger = &logger

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
