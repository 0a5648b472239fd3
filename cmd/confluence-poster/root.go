/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fatih/structs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/toothbrush/confluence-poster/config"
	"github.com/toothbrush/confluence-poster/internal/termfmt"
)

var (
	// Store the result of binding cobra flags
	ConfigPath string
	Debug      bool
	Quiet      bool
	WithVCR    bool

	// Password or API token.  Prefer CONFLUENCE_POSTER_PASSWORD or auth.token_cmd over the flag.
	Password string

	// Command to run to retrieve the password or API token
	AuthTokenCmd []string

	AuthUsername  string
	ConfluenceURL string
	IsCloud       bool

	Loaded *config.Loaded
)

// The environment variable prefix of all environment variables bound to our command line flags.
// For example, --password is bound to CONFLUENCE_POSTER_PASSWORD.
var envPrefix = "CONFLUENCE_POSTER"

// Commands carrying this annotation don't need a config file.
const skipConfigAnnotation = "skip-config"

var rootUsage = strings.TrimSpace(`
Keep pages of a Confluence wiki in local files.  Write them in Confluence wiki markup or HTML, list
them in config.toml, and this tool will create or update the pages for you, asking before it does
anything you didn't tell it to.

Config is read from $XDG_CONFIG_DIRS and $XDG_CONFIG_HOME (confluence_poster/config.toml), then
from the local config file.  Later files override earlier ones.
`)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:          "confluence-poster",
	Short:        "Post local files to Confluence pages",
	Long:         rootUsage,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindEnv(cmd); err != nil {
			return fmt.Errorf("confluence-poster: failed to bind environment: %w", err)
		}

		setupLogging(cmd.ErrOrStderr())
		termfmt.EnableFor(cmd.OutOrStdout())

		if cmd.Annotations[skipConfigAnnotation] == "true" {
			return nil
		}

		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("confluence-poster: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config", config.DefaultLocal, "local config file, overrides the XDG config layers")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().BoolVarP(&Quiet, "quiet", "q", false, "only print prompts, warnings and errors")
	rootCmd.PersistentFlags().StringVar(&Password, "password", "", "Confluence password or API token (respects CONFLUENCE_POSTER_PASSWORD)")
	rootCmd.PersistentFlags().StringSliceVar(&AuthTokenCmd, "auth-token-cmd", []string{}, "shell command to retrieve the password or API token")
	rootCmd.PersistentFlags().StringVar(&AuthUsername, "auth-username", "", "your Confluence username")
	rootCmd.PersistentFlags().StringVar(&ConfluenceURL, "confluence-url", "", "base URL of the wiki, e.g. https://ORG.atlassian.net/wiki")
	rootCmd.PersistentFlags().BoolVar(&IsCloud, "is-cloud", false, "the wiki is Confluence Cloud rather than Server")
	rootCmd.PersistentFlags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay responses")
}

// Bind each unset flag to its environment variable, e.g. --auth-username to
// CONFLUENCE_POSTER_AUTH_USERNAME.
func bindEnv(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	// Environment variables can't have dashes in them, so bind them to their equivalent
	// keys with underscores.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			bindErr = fmt.Errorf("confluence-poster: bad value in $%s_%s: %w",
				envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err)
		}
	})

	return bindErr
}

func initializeConfig(cmd *cobra.Command) error {
	loaded, err := config.Load(ConfigPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	Loaded = loaded
	debugLog("read config from %v", loaded.Files)

	// Bind the auth section onto the flags nobody set
	if err := bindFlags(cmd, loaded.Config.Auth); err != nil {
		return fmt.Errorf("confluence-poster: failed to bind flags: %w", err)
	}

	return nil
}

// Copy each config value onto its flag, unless the flag was given on the command line or through
// the environment.
func bindFlags(cmd *cobra.Command, v config.Auth) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("flag")
		if key == "" {
			return fmt.Errorf("confluence-poster: could not retrieve struct tag 'flag'")
		}
		if flag := cmd.Flag(key); flag == nil {
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// config.Auth only uses pointers for bools, so that "unset" stays visible
			b, ok := field.Value().(*bool)
			if !ok {
				return fmt.Errorf("confluence-poster: found unrecognised field: %+v", field.Name())
			}
			if b != nil {
				if err := cmd.Flags().Set(key, fmt.Sprintf("%v", *b)); err != nil {
					return err
				}
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("confluence-poster: found unrecognised field: %+v", field.Name())
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return err
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("confluence-poster: found unrecognised field: %+v", field.Name())
			}
			if len(ss) > 0 {
				// Set() would split on commas
				if err := replaceSlice(cmd, key, ss); err != nil {
					return err
				}
			}

		default:
			return fmt.Errorf("confluence-poster: found unrecognised field: %+v", field.Name())
		}
	}

	return nil
}

func replaceSlice(cmd *cobra.Command, key string, ss []string) error {
	f := cmd.Flag(key)
	sv, ok := f.Value.(pflag.SliceValue)
	if !ok {
		return fmt.Errorf("confluence-poster: flag --%s is not a list", key)
	}
	if err := sv.Replace(ss); err != nil {
		return err
	}
	f.Changed = true
	return nil
}

// effectiveConfig is the loaded config with connection settings taken from the flags, which by
// now hold the winning value from command line, environment or config.
func effectiveConfig() config.Config {
	cfg := config.Config{}
	if Loaded != nil {
		cfg = Loaded.Config
	}

	isCloud := IsCloud
	cfg.Auth = config.Auth{
		URL:      ConfluenceURL,
		Username: AuthUsername,
		IsCloud:  &isCloud,
		TokenCmd: AuthTokenCmd,
	}

	pages := make(map[string]config.Page, len(cfg.Pages))
	for k, p := range cfg.Pages {
		pages[k] = p
	}
	cfg.Pages = pages

	return cfg
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Flags are only available after (or inside, presumably) the .Execute() thing.
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("confluence-poster: execution error: %w", err)
	}

	return nil
}
