package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/jonathan/admission-advisor/internal/pipeline"
	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/spf13/cobra"
)

var (
	suggestFlags   commonFlags
	suggestProfile string
	suggestNoAI    bool
	suggestJSON    bool
	suggestLimit   int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest courses for a student profile",
	Long: `Runs the suggestion pipeline offline against the catalog for the student profile in --profile
and prints the ranked result. Without an API key (or with --no-ai) explanations use templates.`,
	RunE: runSuggest,
}

func init() {
	suggestFlags.register(suggestCmd)
	suggestCmd.Flags().StringVarP(&suggestProfile, "profile", "p", "", "Path to student profile JSON")
	suggestCmd.Flags().BoolVar(&suggestNoAI, "no-ai", false, "Skip the AI layer entirely")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Print suggestions as JSON")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 20, "Maximum suggestions to print (0 for all)")
	_ = suggestCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := suggestFlags.resolve(cmd)
	if err != nil {
		return err
	}
	if suggestNoAI {
		cfg.APIKey = ""
	}

	profile, err := loadProfile(suggestProfile)
	if err != nil {
		return err
	}

	store, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	service := newPipeline(store, client, nil, cfg)

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out).WithMaxItems(suggestLimit)
	if cfg.Verbose && !suggestJSON {
		printer.PrintProfile(profile)
	}

	results := service.Stream(ctx, profile, func(event pipeline.ProgressEvent) {
		if !cfg.Verbose || suggestJSON {
			return
		}
		if event.Step == pipeline.StepCareerMapping {
			names, _ := event.Content.([]string)
			printer.PrintCareerMapping(profile.CareerInterest, types.NewCourseSet(names...))
		}
	})

	return printSuggestions(out, printer, results, suggestJSON)
}

// loadProfile reads and validates a student profile document.
func loadProfile(path string) (*types.StudentProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var profile types.StudentProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &profile, nil
}

func printSuggestions(out io.Writer, printer *observability.Printer, results []types.Suggestion, asJSON bool) error {
	if !asJSON {
		printer.PrintSuggestions(results)
		return nil
	}
	if results == nil {
		results = []types.Suggestion{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	return nil
}
