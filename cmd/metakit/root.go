package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/richardhadden/metakit"
)

var (
	verbose bool
	defPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metakit",
	Short: "A hierarchical metadata merge engine for YAML/JSON definitions",
	Long: `Metakit resolves effective metadata records over trees of entity types.
Each type may declare its own record; the engine merges it with its
ancestor's effective record field by field, following per-field merge
policies (inherit-or-override, do-not-inherit, accumulate).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&defPath, "path", "", "Definition root (default: nearest metakit.yaml/.metakit/.git upwards, else cwd)")
}

// definitionPath returns the definition root for subcommands: the --path
// flag if given, else the nearest indicator upwards, else the working
// directory.
func definitionPath() string {
	if defPath != "" {
		return defPath
	}

	wd, err := os.Getwd()
	if err != nil {
		fatal("Error getting working directory", err)
	}

	if root, err := metakit.FindRoot(wd); err == nil {
		return root
	}
	return wd
}
