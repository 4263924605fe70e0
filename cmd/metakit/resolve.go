package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/richardhadden/metakit"
	"github.com/richardhadden/metakit/pkg/core"
)

var (
	resolveJSON      bool
	resolveHierarchy string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [type]",
	Short: "Print an entity type's effective metadata record",
	Long: `Resolve prints the fully merged record for one entity type. When only
one hierarchy is loaded, --hierarchy may be omitted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		typeName := args[0]

		svc, err := metakit.Open(context.Background(), definitionPath(),
			metakit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Error loading definitions", err)
		}

		hierarchy := resolveHierarchy
		if hierarchy == "" {
			names := svc.Hierarchies()
			if len(names) != 1 {
				fatal("Error resolving type", fmt.Errorf("%d hierarchies loaded, use --hierarchy", len(names)))
			}
			hierarchy = names[0]
		}

		rec, err := svc.Resolve(hierarchy, typeName)
		if err != nil {
			fatal("Error resolving type", err)
		}

		if resolveJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(renderValues(rec)); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, f := range rec.Schema().Fields() {
			v, _ := rec.Get(f.Name)
			fmt.Printf("%s: %v\n", f.Name, renderValue(v))
		}
	},
}

// renderValues converts a record to plain JSON-encodable values; sets
// become sorted lists.
func renderValues(rec *core.Record) map[string]any {
	out := make(map[string]any)
	for _, f := range rec.Schema().Fields() {
		v, _ := rec.Get(f.Name)
		out[f.Name] = renderValue(v)
	}
	return out
}

func renderValue(v any) any {
	if s, ok := v.(core.Set); ok {
		return s.Elems()
	}
	return v
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	resolveCmd.Flags().StringVar(&resolveHierarchy, "hierarchy", "", "Schema name of the hierarchy to resolve in")
}
