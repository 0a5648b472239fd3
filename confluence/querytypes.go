package confluence

// GetContentQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-get
type GetContentQuery struct {
	// Filter the results to content based on...
	SpaceKey string `url:"spaceKey,omitempty"` // the space it lives in.
	Title    string `url:"title,omitempty"`    // its exact title.
	Type     string `url:"type,omitempty"`     // its type: page, blogpost.
	Status   string `url:"status,omitempty"`   // its status: current, trashed, draft, any.

	Expand []string `url:"expand,omitempty,comma"` // properties to expand, e.g. version, body.view

	Start int `url:"start,omitempty"`
	Limit int `url:"limit,omitempty"` // page limit; default 25
}

// GetContentByIDQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
type GetContentByIDQuery struct {
	ID int `url:"-"` // ID of the page; required

	Expand  []string `url:"expand,omitempty,comma"`
	Status  string   `url:"status,omitempty"`
	Version int      `url:"version,omitempty"` // Retrieve a previously published version.
}

// GetChildPagesQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content---children-and-descendants/#api-wiki-rest-api-content-id-child-page-get
type GetChildPagesQuery struct {
	ID int `url:"-"` // ID of the parent; required

	Expand []string `url:"expand,omitempty,comma"`
	Start  int      `url:"start,omitempty"`
	Limit  int      `url:"limit,omitempty"`
}

// GetHistoryQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-history-get
type GetHistoryQuery struct {
	ID int `url:"-"`

	Expand []string `url:"expand,omitempty,comma"`
}
