package confluence

// ContentArray response type
type ContentArray struct {
	Results []Content `json:"results"`
	Start   int       `json:"start"`
	Limit   int       `json:"limit"`
	Size    int       `json:"size"`

	Links struct {
		// Contains the relative URL for the next set of results.  This property will not be
		// present if there is no additional data available.
		Next string `json:"next"`
	} `json:"_links"`
}

// Error body returned alongside 4xx responses.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
