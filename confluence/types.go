package confluence

import (
	"fmt"
	"strconv"
)

// See https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-users/#api-wiki-rest-api-user-current-get
type User struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	UserKey     string `json:"userKey"`
	AccountID   string `json:"accountId"`
	AccountType string `json:"accountType"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Content is a page as the v1 content API sees it:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
//
// The same shape is sent back for create and update, which is why everything is omitempty.
type Content struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type,omitempty"`
	Status    string     `json:"status,omitempty"`
	Title     string     `json:"title,omitempty"`
	Space     *Space     `json:"space,omitempty"`
	Version   *Version   `json:"version,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Body      *Body      `json:"body,omitempty"`
	Links     *Links     `json:"_links,omitempty"`
}

// IntID returns the numeric page ID.  v1 serialises IDs as strings.
func (c Content) IntID() (int, error) {
	id, err := strconv.Atoi(c.ID)
	if err != nil {
		return 0, fmt.Errorf("confluence: object ID %s not an int: %w", c.ID, err)
	}
	return id, nil
}

type Space struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

type Ancestor struct {
	ID string `json:"id"`
}

// Version defines the content version number
// the version number is used for updating content
type Version struct {
	Number    int    `json:"number"`
	By        *User  `json:"by,omitempty"`
	When      string `json:"when,omitempty"`
	Message   string `json:"message,omitempty"`
	MinorEdit bool   `json:"minorEdit"`
}

// Body holds the page content in whichever representations were asked for.
type Body struct {
	Storage *Storage `json:"storage,omitempty"`
	View    *Storage `json:"view,omitempty"`
	Editor  *Storage `json:"editor,omitempty"`
	Wiki    *Storage `json:"wiki,omitempty"`
}

// Storage defines the storage information
type Storage struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

type Links struct {
	WebUI  string `json:"webui,omitempty"`
	TinyUI string `json:"tinyui,omitempty"`
	Base   string `json:"base,omitempty"`
}

// History is returned by /content/{id}/history.
type History struct {
	Latest      bool     `json:"latest"`
	CreatedBy   *User    `json:"createdBy,omitempty"`
	CreatedDate string   `json:"createdDate,omitempty"`
	LastUpdated *Version `json:"lastUpdated,omitempty"`
}

// Representation is the markup the server should expect a body in.
type Representation string

const (
	RepresentationStorage Representation = "storage"
	RepresentationEditor  Representation = "editor"
	RepresentationWiki    Representation = "wiki"
	RepresentationView    Representation = "view"
)

// NewBody wraps a value in the body slot matching its representation.
func NewBody(value string, repr Representation) (*Body, error) {
	s := &Storage{Representation: string(repr), Value: value}
	switch repr {
	case RepresentationStorage:
		return &Body{Storage: s}, nil
	case RepresentationEditor:
		return &Body{Editor: s}, nil
	case RepresentationWiki:
		return &Body{Wiki: s}, nil
	}
	return nil, fmt.Errorf("confluence: can't post a body in representation %q", repr)
}
