/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.  This is the
result of merging all config files, with command line flags and environment variables applied.  The
password is never shown.
`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(effectiveConfig())
		if err != nil {
			return fmt.Errorf("confluence-poster: couldn't dump config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# Debug: %v\n", Debug)
		fmt.Fprintf(cmd.OutOrStdout(), "# WithVCR: %v\n", WithVCR)
		fmt.Fprintf(cmd.OutOrStdout(), "%s", out)
		return nil
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
