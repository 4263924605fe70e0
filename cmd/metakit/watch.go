package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/richardhadden/metakit"
	"github.com/richardhadden/metakit/pkg/adapters/fs"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch definition files and re-validate on change",
	Long: `Watch observes the definition directory and reloads the hierarchies
whenever a manifest file changes. Each reload prints a fresh validation
result. Interrupt with Ctrl-C to stop.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := definitionPath()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := metakit.Open(ctx, path,
			metakit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Error loading definitions", err)
		}

		events, err := svc.Watch(ctx, fs.DefaultPattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		report(svc, path)
		fmt.Fprintf(os.Stderr, "Watching %s for changes...\n", path)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				slog.Debug("Definition change detected", "type", ev.Type, "id", ev.ID)
				if err := svc.Load(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "✗ %s: %v\n", ev.ID, err)
					continue
				}
				report(svc, path)
			}
		}
	},
}

func report(svc *metakit.Service, path string) {
	names := svc.Hierarchies()
	total := 0
	for _, name := range names {
		h, _ := svc.Hierarchy(name)
		total += len(h.Types())
	}
	fmt.Printf("✓ %s: %d hierarchies, %d types\n", path, len(names), total)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
