/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-poster/config"
	"github.com/toothbrush/confluence-poster/poster"
)

var configInitUsage = strings.TrimSpace(`
Write a config file by answering a few questions.  Each question names the dotted key it sets, like
auth.url or pages.page1.page_title.  Without --keys you'll be asked for everything a single page
needs.

If the file already exists you're asked before it's touched, and only the keys you answer change.
Nothing is written until you agree to save.
`)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update a config file interactively",
	Long:  configInitUsage,
	Args:  cobra.ExactArgs(0),
	// The file we're about to write may not exist yet.
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        configInitRun,
}

var (
	InitKeys []string
	InitHome bool
)

// Asked for when --keys isn't given.
var defaultInitKeys = []string{
	"author",
	"auth.url",
	"auth.username",
	"auth.is_cloud",
	"pages.page1.page_title",
	"pages.page1.page_space",
	"pages.page1.page_file",
}

// Keys holding booleans rather than strings.
var boolKeys = map[string]bool{
	"is_cloud": true,
}

func init() {
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringSliceVar(&InitKeys, "keys", []string{}, fmt.Sprintf("dotted keys to ask for (default %s)", strings.Join(defaultInitKeys, ",")))
	configInitCmd.Flags().BoolVar(&InitHome, "home", false, "write to the config in $XDG_CONFIG_HOME instead of --config")
}

func configInitRun(cmd *cobra.Command, args []string) error {
	paths, err := config.LayerPaths(ConfigPath)
	if err != nil {
		return err
	}
	// the local file comes last, the XDG_CONFIG_HOME one right before it
	path := paths[len(paths)-1]
	if InitHome {
		path = paths[len(paths)-2]
	}

	keys := InitKeys
	if len(keys) == 0 {
		keys = defaultInitKeys
	}

	prompter := poster.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	_, err = configDialog(prompter, cmd.OutOrStdout(), path, keys)
	return err
}

// configDialog asks for a value for each key and saves them to path.  It reports whether the file
// was written.
func configDialog(p *poster.Prompter, out io.Writer, path string, keys []string) (bool, error) {
	doc := map[string]any{}

	if _, err := os.Stat(path); err == nil {
		ok, err := p.Confirm(fmt.Sprintf("Config file %s exists. Overwrite?", path))
		if err != nil {
			return false, err
		}
		if !ok {
			fmt.Fprintf(out, "Not overwriting %s\n", path)
			return false, nil
		}

		if doc, err = config.ReadDocument(path); err != nil {
			return false, err
		}
	}

	for _, key := range keys {
		if current, ok := config.LookupKey(doc, key); ok {
			fmt.Fprintf(out, "Current value of %s: %v\n", key, current)
		}

		value, err := askValue(p, out, key)
		if err != nil {
			return false, err
		}
		if err := config.SetKey(doc, key, value); err != nil {
			return false, err
		}
		debugLog("set %s", key)
	}

	ok, err := p.ConfirmDefault(fmt.Sprintf("Save the config to %s?", path), true)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(out, "Config not saved")
		return false, nil
	}

	if err := config.WriteDocument(path, doc); err != nil {
		return false, err
	}
	fmt.Fprintf(out, "Saved config to %s\n", path)
	return true, nil
}

func askValue(p *poster.Prompter, out io.Writer, key string) (any, error) {
	parts := strings.Split(key, ".")
	isBool := boolKeys[parts[len(parts)-1]]

	for {
		question := fmt.Sprintf("Please provide a value for %s", key)
		if isBool {
			question += " (true/false)"
		}
		raw, err := p.Prompt(question)
		if err != nil {
			return nil, err
		}
		if !isBool {
			return raw, nil
		}

		b, err := strconv.ParseBool(raw)
		if err == nil {
			return b, nil
		}
		fmt.Fprintln(out, "Error: invalid input")
	}
}
