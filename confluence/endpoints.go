package confluence

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"
)

// getContentEndpoint returns the (v1) API endpoint to search content by space and title:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-get
func (a *API) getContentEndpoint(opts GetContentQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("rest", "api", "content")
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	return withQuery(ep, opts)
}

// getContentByIDEndpoint returns the (v1) API endpoint to fetch one page:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
func (a *API) getContentByIDEndpoint(opts GetContentByIDQuery) (*url.URL, error) {
	if opts.ID < 1 {
		return nil, fmt.Errorf("confluence: please provide ID to get page by ID")
	}

	ep, err := a.resolveEndpoint("rest", "api", "content", strconv.Itoa(opts.ID))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	return withQuery(ep, opts)
}

// createContentEndpoint returns the (v1) API endpoint to create a page:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-post
func (a *API) createContentEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("rest", "api", "content")
}

// updateContentEndpoint returns the (v1) API endpoint to update a page:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-put
func (a *API) updateContentEndpoint(id int) (*url.URL, error) {
	if id < 1 {
		return nil, fmt.Errorf("confluence: please provide ID to update page")
	}

	return a.resolveEndpoint("rest", "api", "content", strconv.Itoa(id))
}

// getHistoryEndpoint returns the (v1) API endpoint for a page's history:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-history-get
func (a *API) getHistoryEndpoint(opts GetHistoryQuery) (*url.URL, error) {
	if opts.ID < 1 {
		return nil, fmt.Errorf("confluence: please provide ID to get page history")
	}

	ep, err := a.resolveEndpoint("rest", "api", "content", strconv.Itoa(opts.ID), "history")
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	return withQuery(ep, opts)
}

// getChildPagesEndpoint returns the (v1) API endpoint to list a page's direct children:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content---children-and-descendants/#api-wiki-rest-api-content-id-child-page-get
func (a *API) getChildPagesEndpoint(opts GetChildPagesQuery) (*url.URL, error) {
	if opts.ID < 1 {
		return nil, fmt.Errorf("confluence: please provide ID to list child pages")
	}

	ep, err := a.resolveEndpoint("rest", "api", "content", strconv.Itoa(opts.ID), "child", "page")
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	return withQuery(ep, opts)
}

// getCurrentUserEndpoint returns the (v1) API endpoint to query current user
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-users/#api-wiki-rest-api-user-current-get
func (a *API) getCurrentUserEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("rest", "api", "user", "current")
}

// Return the endpoint below the base URI.  Server installs may live under a context path like
// /confluence, and Cloud under /wiki, so we extend the path rather than resolve an absolute one.
func (a *API) resolveEndpoint(elem ...string) (*url.URL, error) {
	if a.BaseURI == nil {
		return nil, fmt.Errorf("confluence: no base URI configured")
	}

	return a.BaseURI.JoinPath(elem...), nil
}

func withQuery(ep *url.URL, opts any) (*url.URL, error) {
	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}
