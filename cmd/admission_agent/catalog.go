package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/spf13/cobra"
)

var catalogValidateFlags, catalogCoursesFlags commonFlags

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the course catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog against its JSON schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := catalogValidateFlags.resolve(cmd)
		if err != nil {
			return err
		}
		return validateCatalog(context.Background(), cmd.OutOrStdout(), cfg.Catalog)
	},
}

var catalogCoursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the distinct course names in the catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := catalogCoursesFlags.resolve(cmd)
		if err != nil {
			return err
		}
		return listCourses(context.Background(), cmd.OutOrStdout(), cfg.Catalog)
	},
}

func init() {
	catalogValidateFlags.register(catalogValidateCmd)
	catalogCoursesFlags.register(catalogCoursesCmd)
	catalogCmd.AddCommand(catalogValidateCmd, catalogCoursesCmd)
	rootCmd.AddCommand(catalogCmd)
}

func loadCatalog(ctx context.Context, location string) (*catalog.Catalog, error) {
	source, err := catalog.NewSource(ctx, location, s3ConfigFromEnv())
	if err != nil {
		return nil, err
	}
	data, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", source, err)
	}
	offerings, err := catalog.Parse(data)
	if err != nil {
		return nil, err
	}
	return catalog.New(offerings), nil
}

func validateCatalog(ctx context.Context, out io.Writer, location string) error {
	cat, err := loadCatalog(ctx, location)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Validation failed: %v\n", err)
		return err
	}
	_, _ = fmt.Fprintf(out, "Validation passed: %d offerings, %d distinct courses\n", cat.Len(), len(cat.CourseNames()))
	return nil
}

func listCourses(ctx context.Context, out io.Writer, location string) error {
	cat, err := loadCatalog(ctx, location)
	if err != nil {
		return err
	}
	observability.NewPrinter(out).PrintCourseNames(cat.CourseNames())
	return nil
}
