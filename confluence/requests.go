package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("confluence: not found")

func (api *API) GetContent(ctx context.Context, opts GetContentQuery) (*ContentArray, error) {
	ep, err := api.getContentEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get content endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var contentList ContentArray

	if err := json.Unmarshal(body, &contentList); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &contentList, nil
}

func (api *API) GetContentByID(ctx context.Context, opts GetContentByIDQuery) (*Content, error) {
	ep, err := api.getContentByIDEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get single page endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var page Content

	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &page, nil
}

func (api *API) CreateContent(ctx context.Context, content *Content) (*Content, error) {
	ep, err := api.createContentEndpoint()
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get create endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodPost, ep, content)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var created Content

	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &created, nil
}

func (api *API) UpdateContent(ctx context.Context, id int, content *Content) (*Content, error) {
	ep, err := api.updateContentEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get update endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodPut, ep, content)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var updated Content

	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &updated, nil
}

func (api *API) GetHistory(ctx context.Context, opts GetHistoryQuery) (*History, error) {
	ep, err := api.getHistoryEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get history endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var history History

	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &history, nil
}

func (api *API) getChildPages(ctx context.Context, opts GetChildPagesQuery) (*ContentArray, error) {
	ep, err := api.getChildPagesEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get child pages endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var children ContentArray

	if err := json.Unmarshal(body, &children); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &children, nil
}

// CurrentUser return current user information
func (api *API) CurrentUser(ctx context.Context) (*User, error) {
	ep, err := api.getCurrentUserEndpoint()
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get current user endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &user, nil
}

// request performs one call against the REST API.  A non-nil payload is sent as JSON.
func (api *API) request(ctx context.Context, method string, url *url.URL, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// if user & token are not set, do not add authorization header
	if api.username != "" && api.token != "" {
		req.SetBasicAuth(api.username, api.token)
	} else if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("confluence: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusPartialContent, http.StatusNoContent, http.StatusResetContent:
		return body, nil
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("confluence: authentication failed")
	case http.StatusForbidden:
		return nil, fmt.Errorf("confluence: permission denied: %s", serverMessage(response.Status, body))
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url.String())
	case http.StatusBadRequest:
		return nil, fmt.Errorf("confluence: bad request: %s", serverMessage(response.Status, body))
	case http.StatusServiceUnavailable:
		return nil, fmt.Errorf("confluence: service is not available: %s", response.Status)
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("confluence: internal server error: %s", response.Status)
	case http.StatusConflict:
		return nil, fmt.Errorf("confluence: conflict: %s", serverMessage(response.Status, body))
	}

	return nil, fmt.Errorf("confluence: unknown HTTP response status: %s: %s", response.Status, url.String())
}

// Confluence explains most 4xx answers in a small JSON document.
func serverMessage(status string, body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return status
	}
	return fmt.Sprintf("%s: %s", status, e.Message)
}
