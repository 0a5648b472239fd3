/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Commands to look at remote pages",
	Long: `
Commands in this namespace are to help you explore pages in the Confluence wiki.
`,
}

func init() {
	rootCmd.AddCommand(pageCmd)
}
