// Package main provides the entry point for the Student Admission Advisor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "admission_agent",
	Short: "Student Admission Advisor API server and tools",
	Long: `Admission Advisor filters a college course catalog by a student's qualification, stream and marks,
scores and ranks the eligible offerings, and explains each suggestion with an optional AI layer.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
