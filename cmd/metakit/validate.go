package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/richardhadden/metakit"
)

var (
	validateJSON bool
)

type validationReport struct {
	Path        string   `json:"path"`
	Hierarchies []string `json:"hierarchies,omitempty"`
	Error       string   `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Load and validate every definition manifest",
	Long: `Validate loads all manifests under the definition root, defines their
schemas, constructs their records and resolves every entity type. Any
schema definition error, record validation error, schema mismatch or
unresolved placeholder fails validation.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := definitionPath()
		if len(args) == 1 {
			path = args[0]
		}

		report := validationReport{Path: path}

		svc, err := metakit.Open(context.Background(), path,
			metakit.WithLogger(slog.Default()),
		)
		if err != nil {
			report.Error = err.Error()
		} else {
			report.Hierarchies = svc.Hierarchies()
		}

		if validateJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(report); err != nil {
				fatal("Error encoding JSON", err)
			}
		} else if report.Error != "" {
			fmt.Fprintf(os.Stderr, "invalid: %s\n", report.Error)
		} else {
			fmt.Printf("ok: %d hierarchies\n", len(report.Hierarchies))
			for _, name := range report.Hierarchies {
				fmt.Printf("  %s\n", name)
			}
		}

		if report.Error != "" {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
}
