package main

import (
	"fmt"

	"github.com/jonathan/jobtrack/internal/config"
	"github.com/jonathan/jobtrack/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job tracking REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	appConfig, err := config.NewAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	srv, err := server.New(server.Config{
		Port: servePort,
		App:  appConfig,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
