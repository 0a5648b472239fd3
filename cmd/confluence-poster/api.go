/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/toothbrush/confluence-poster/confluence"
	"golang.org/x/term"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// newAPI builds a Confluence client from the resolved flags.  The returned stop function has to be
// called once done, it flushes VCR recordings.
func newAPI(ctx context.Context) (*confluence.API, func() error, error) {
	noop := func() error { return nil }

	password, err := resolvePassword(ctx)
	if err != nil {
		return nil, noop, err
	}

	api, err := confluence.NewAPI(
		ConfluenceURL,
		AuthUsername,
		password,
		confluence.DeploymentFor(IsCloud))
	if err != nil {
		return nil, noop, fmt.Errorf("confluence-poster: couldn't instantiate Confluence API: %w", err)
	}
	debugLog("talking to %s (%s)", api.BaseURI, api.Deployment)

	if !WithVCR {
		return api, noop, nil
	}

	// set up VCR recordings.
	opts := &recorder.Options{
		CassetteName:       "fixtures/confluence-poster",
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, noop, fmt.Errorf("confluence-poster: couldn't set up go-vcr recording: %w", err)
	}

	// Add a hook which removes Authorization headers from all requests
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	api.Client = r.GetDefaultClient()

	return api, r.Stop, nil
}

// resolvePassword tries, in order: --password (or its environment variable), auth.token_cmd, and
// asking on the terminal.
func resolvePassword(ctx context.Context) (string, error) {
	if Password != "" {
		return Password, nil
	}

	if len(AuthTokenCmd) > 0 {
		tokenCmdOutput, err := exec.CommandContext(ctx, AuthTokenCmd[0], AuthTokenCmd[1:]...).Output()
		if err != nil {
			return "", fmt.Errorf("confluence-poster: couldn't execute auth-token-cmd '%v': %w", AuthTokenCmd, err)
		}
		return strings.Split(string(tokenCmdOutput), "\n")[0], nil
	}

	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		fmt.Fprintf(os.Stderr, "Password for %s: ", AuthUsername)
		b, err := term.ReadPassword(int(fd))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("confluence-poster: couldn't read password: %w", err)
		}
		return string(b), nil
	}

	return "", fmt.Errorf("confluence-poster: no password, use --password, $%s_PASSWORD or auth.token_cmd", envPrefix)
}
