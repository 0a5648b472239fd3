/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-poster/confluence"
	"github.com/toothbrush/confluence-poster/pagedump"
)

var pageShowUsage = strings.TrimSpace(`
Fetch a page and print it as Markdown, with a YAML header describing it.  Handy to see what's in the
wiki before you overwrite it.  Without --page-title the first configured page is shown.
`)

var pageShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a remote page as Markdown",
	Long:  pageShowUsage,
	Args:  cobra.ExactArgs(0),
	RunE:  pageShowRun,
}

var (
	ShowPageTitle string
	ShowSpace     string
	ShowOutput    string
)

func init() {
	pageCmd.AddCommand(pageShowCmd)

	pageShowCmd.Flags().StringVar(&ShowPageTitle, "page-title", "", "title of the page to show")
	pageShowCmd.Flags().StringVar(&ShowSpace, "space", "", "space of the page to show")
	pageShowCmd.Flags().StringVarP(&ShowOutput, "output", "o", "", "write to this file or directory instead of stdout")
}

func pageShowRun(cmd *cobra.Command, args []string) error {
	title, space := ShowPageTitle, ShowSpace
	if title == "" || space == "" {
		cfg := effectiveConfig()
		keys := cfg.PageKeys()
		if len(keys) == 0 {
			return fmt.Errorf("confluence-poster: no page configured, use --page-title and --space")
		}
		first := cfg.Pages[keys[0]]
		if title == "" {
			title = first.Title
		}
		if space == "" {
			space = first.Space
		}
	}

	api, stop, err := newAPI(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := stop(); err != nil {
			logger.Warn("couldn't stop recorder", "error", err)
		}
	}()

	content, err := api.GetPageByTitle(cmd.Context(), space, title,
		"body."+string(confluence.RepresentationView), "version", "space", "ancestors")
	if err != nil {
		return fmt.Errorf("confluence-poster: couldn't fetch page '%s': %w", title, err)
	}
	id, err := content.IntID()
	if err != nil {
		return err
	}

	history, err := api.GetContentHistory(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("confluence-poster: couldn't fetch history of page #%d: %w", id, err)
	}
	children, err := api.GetChildIDList(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("confluence-poster: couldn't list children of page #%d: %w", id, err)
	}
	debugLog("page #%d has %d child page(s)", id, len(children))

	converter := &pagedump.Converter{BaseURI: api.BaseURI, Deployment: api.Deployment}
	doc, err := converter.ToMarkdown(pagedump.Page{
		Content:  content,
		History:  history,
		ChildIDs: children,
	})
	if err != nil {
		return err
	}

	if ShowOutput == "" {
		return pagedump.Write(cmd.OutOrStdout(), doc)
	}

	path, err := pagedump.WriteFile(ShowOutput, doc)
	if err != nil {
		return err
	}
	if !Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote page #%d to %s\n", id, path)
	}
	return nil
}
