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

var listJSON bool

type hierarchyListing struct {
	Schema string        `json:"schema"`
	Types  []typeListing `json:"types"`
}

type typeListing struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded hierarchies and their entity types",
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := metakit.Open(context.Background(), definitionPath(),
			metakit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Error loading definitions", err)
		}

		var listings []hierarchyListing
		for _, name := range svc.Hierarchies() {
			h, _ := svc.Hierarchy(name)
			listing := hierarchyListing{Schema: name}
			for _, et := range h.Types() {
				tl := typeListing{Name: et.Name()}
				if p := et.Parent(); p != nil {
					tl.Parent = p.Name()
				}
				listing.Types = append(listing.Types, tl)
			}
			listings = append(listings, listing)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(listings); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, listing := range listings {
			fmt.Printf("%s\n", listing.Schema)
			for _, tl := range listing.Types {
				if tl.Parent == "" {
					fmt.Printf("  %s\n", tl.Name)
					continue
				}
				fmt.Printf("  %s (parent: %s)\n", tl.Name, tl.Parent)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
