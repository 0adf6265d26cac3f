// Package main provides the entry point for the jobtrack HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Job application tracker HTTP API server",
	Long:  "jobtrack is a multi-tenant job-application tracker: each user owns a private collection of job records and can filter, sort, paginate, and summarize them over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
