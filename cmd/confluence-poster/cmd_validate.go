/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-poster/internal/termfmt"
	"github.com/toothbrush/confluence-poster/poster"
)

var validateUsage = strings.TrimSpace(`
Check the config without posting anything.  Offline, this makes sure every page has a title, space
and file in a format that can be posted.  With --online the pages and their parents are also looked
up in the wiki, and their last editor is compared against the configured author.
`)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config, and optionally the wiki",
	Long:  validateUsage,
	Args:  cobra.ExactArgs(0),
	RunE:  validateRun,
}

var (
	Online  bool
	Workers int
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&Online, "online", false, "look the pages up in the wiki as well")
	validateCmd.Flags().IntVar(&Workers, "workers", 4, "number of concurrent lookups with --online")
}

func validateRun(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, k := range cfg.PageKeys() {
		page := poster.PostedPage{Page: cfg.Pages[k]}
		format, err := page.Format()
		if err != nil {
			return fmt.Errorf("confluence-poster: page %s: %w", k, err)
		}
		if _, err := poster.RepresentationForFormat(format); err != nil {
			return fmt.Errorf("confluence-poster: page %s: %w", k, err)
		}
		debugLog("page %s: '%s' in %s from %s (%s)", k, page.Title, page.Space, page.File, format)
	}
	fmt.Fprintf(out, "Config is valid, %d page(s) configured\n", len(cfg.Pages))

	if !Online {
		return nil
	}
	if Workers < 1 {
		return fmt.Errorf("confluence-poster: --workers must be at least 1, got %d", Workers)
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

	me, err := api.CurrentUser(cmd.Context())
	if err != nil {
		return fmt.Errorf("confluence-poster: couldn't log in: %w", err)
	}
	fmt.Fprintf(out, "Logged in as %s\n", api.Deployment.Identify(me))

	checker := &poster.Checker{
		Wiki:           api,
		Workers:        Workers,
		ExpectedAuthor: cfg.ExpectedAuthor(),
	}
	if !Quiet && termfmt.IsTerminal(cmd.ErrOrStderr()) {
		checker.Progress = cmd.ErrOrStderr()
	}
	results, err := checker.Check(cmd.Context(), cfg.Pages)
	if err != nil {
		return err
	}

	problems := 0
	for _, r := range results {
		fmt.Fprintf(out, "%s: ", termfmt.Bold().V(r.Key))
		switch {
		case r.Err != nil:
			problems++
			fmt.Fprintf(out, "error: %v\n", r.Err)
			continue
		case r.Page.Found:
			fmt.Fprintf(out, "'%s' is page #%d, %s\n", r.Title, r.Page.ID, termfmt.Linked(r.Page.URL).V(r.Page.URL))
		default:
			fmt.Fprintf(out, "'%s' doesn't exist in %s yet\n", r.Title, r.Space)
		}

		if !r.AuthorOK {
			problems++
			fmt.Fprintf(out, "  last edited by %s, not %s\n", r.LastAuthor, cfg.ExpectedAuthor())
		}
		if r.ParentTitle != "" && !r.Page.Found {
			if r.Parent.Found {
				fmt.Fprintf(out, "  parent '%s' is page #%d\n", r.ParentTitle, r.Parent.ID)
			} else {
				problems++
				fmt.Fprintf(out, "  parent '%s' not found\n", r.ParentTitle)
			}
		}
	}

	if problems > 0 {
		return fmt.Errorf("confluence-poster: found %d problem(s) in the wiki", problems)
	}
	return nil
}
