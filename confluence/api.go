package confluence

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func NewAPI(baseURL string, username string, token string, deployment Deployment) (*API, error) {

	if baseURL == "" {
		return &API{}, fmt.Errorf("confluence: configure your Confluence URL with --confluence-url or auth.url")
	}
	if username == "" {
		return &API{}, fmt.Errorf("confluence: configure your Confluence username with --auth-username or auth.username")
	}
	if token == "" {
		return &API{}, fmt.Errorf("confluence: password is empty, please check --password or auth.token_cmd")
	}

	u, err := url.ParseRequestURI(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI:    u,
		Deployment: deployment,
		token:      token,
		username:   username,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Where the wiki lives, e.g. https://confluence.example.com or https://ORG.atlassian.net/wiki
	BaseURI *url.URL

	// Server and Cloud identify users differently.
	Deployment Deployment

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Auth info
	username, token string
}

// PageURL returns the browser link of a page.
func (api *API) PageURL(c *Content) string {
	if c == nil || c.Links == nil {
		return ""
	}
	return api.BaseURI.String() + c.Links.WebUI
}

// HistoryURL links to the version history of a page.
func (api *API) HistoryURL(pageID int) string {
	return fmt.Sprintf("%s/pages/viewpreviousversions.action?pageId=%d", api.BaseURI.String(), pageID)
}
