/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-poster/config"
)

// whichCmd represents the which command
var whichCmd = &cobra.Command{
	Use:   "which",
	Short: "Tell me the resolved config paths",
	Long: `
Output every path a config file is read from, least important first.  Files that exist, and will
be merged into the effective config, are marked with a *.
`,
	Args: cobra.ExactArgs(0),
	// Has to work when no config file is found at all.
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.LayerPaths(ConfigPath)
		if err != nil {
			return err
		}

		for _, p := range paths {
			marker := " "
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, p)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(whichCmd)
}
