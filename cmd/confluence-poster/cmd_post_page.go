/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-poster/config"
	"github.com/toothbrush/confluence-poster/internal/termfmt"
	"github.com/toothbrush/confluence-poster/poster"
)

var postPageUsage = strings.TrimSpace(`
Post every page listed in the config.  Existing pages are updated; for pages that don't exist yet
you'll be asked whether to create them, and where.

If any page was last edited by someone other than the configured author, nothing is posted at all
unless --force is given.  Use "-" as --page-file to read the content from stdin; no questions can
be asked then, so combine it with --force-create if the page may not exist yet.
`)

var postPageCmd = &cobra.Command{
	Use:   "post-page",
	Short: "Create or update the configured pages",
	Long:  postPageUsage,
	Args:  cobra.ExactArgs(0),
	RunE:  postPageRun,
}

var (
	PageTitle       string
	ParentPageTitle string
	PageFile        string
	MinorEdit       bool
	Force           bool
	ForceCreate     bool
	VersionComment  string
	Report          bool
)

func init() {
	rootCmd.AddCommand(postPageCmd)

	postPageCmd.Flags().StringVar(&PageTitle, "page-title", "", "override the page title (only with a single page configured)")
	postPageCmd.Flags().StringVar(&ParentPageTitle, "parent-page-title", "", "create the page under this one (only with a single page configured)")
	postPageCmd.Flags().StringVar(&PageFile, "page-file", "", `override the page file, "-" reads stdin (only with a single page configured)`)
	postPageCmd.Flags().BoolVar(&MinorEdit, "minor-edit", false, "don't notify watchers about updates")
	postPageCmd.Flags().BoolVarP(&Force, "force", "f", false, "post even if someone else edited the page last")
	postPageCmd.Flags().BoolVar(&ForceCreate, "force-create", false, "create missing pages without asking")
	postPageCmd.Flags().StringVar(&VersionComment, "version-comment", "", "comment attached to the new version of updated pages")
	postPageCmd.Flags().BoolVar(&Report, "report", false, "print a summary when done")
}

func postPageRun(cmd *cobra.Command, args []string) error {
	cfg, err := pageOverrides(effectiveConfig())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	state := &poster.State{
		Force:          Force,
		ForceCreate:    ForceCreate,
		MinorEdit:      MinorEdit,
		Quiet:          Quiet,
		Report:         Report,
		VersionComment: VersionComment,
		Prompter:       poster.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		Out:            cmd.OutOrStdout(),
		Log:            logger,
	}

	pages := []*poster.PostedPage{}
	for _, p := range cfg.OrderedPages() {
		if p.File == poster.StdinFile {
			state.SetFilterMode()
		}
		pages = append(pages, &poster.PostedPage{Page: p})
	}
	if state.FilterMode() {
		debugLog("reading page content from stdin, prompts are disabled")
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

	runner := &poster.Runner{
		State:          state,
		Wiki:           api,
		Stdin:          cmd.InOrStdin(),
		ExpectedAuthor: cfg.ExpectedAuthor(),
	}
	report, err := runner.Run(cmd.Context(), pages)
	if err != nil {
		return err
	}

	if state.Report || len(report.Failed) > 0 {
		report.Print(cmd.OutOrStdout(), func(s string) string {
			return fmt.Sprint(termfmt.Bold().V(s))
		})
	}
	if len(state.CreatedPages) > 0 {
		debugLog("created pages: %v", state.CreatedPages)
	}

	return nil
}

// pageOverrides applies --page-title, --parent-page-title and --page-file.  They only make sense
// when a single page is configured.
func pageOverrides(cfg config.Config) (config.Config, error) {
	if PageTitle == "" && ParentPageTitle == "" && PageFile == "" {
		return cfg, nil
	}

	key, page, err := cfg.SinglePage()
	if err != nil {
		return cfg, fmt.Errorf("confluence-poster: --page-title, --parent-page-title and --page-file need a single configured page: %w", err)
	}

	if PageTitle != "" {
		page.Title = PageTitle
	}
	if ParentPageTitle != "" {
		page.ParentTitle = ParentPageTitle
	}
	if PageFile != "" {
		page.File = PageFile
	}
	cfg.Pages[key] = page

	return cfg, nil
}
