package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/richardhadden/metakit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of metakit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("metakit version %s\n", strings.TrimSpace(metakit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
