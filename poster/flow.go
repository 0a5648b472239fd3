package poster

import (
	"context"
	"fmt"

	"github.com/toothbrush/confluence-poster/confluence"
)

// Action is what happened to a page.
type Action int

const (
	Skipped Action = iota
	Created
	Updated
)

func (a Action) String() string {
	switch a {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "skipped"
	}
}

// Outcome of running one page through the flow.
type Outcome struct {
	Action Action
	PageID int

	// How many times a parent page was looked up.
	ParentAttempts int
}

type flowState int

const (
	lookingForPage flowState = iota
	parentDecision
	parentLookup
	createReady
	updateReady
)

// Flow decides, asking the user where needed, whether a page gets updated, created (and where) or
// skipped, then carries that out.
type Flow struct {
	State    *State
	Resolver *Resolver
	Poster   *Poster
}

// Process runs one page through the flow.  The page's PageID is filled in once known.
func (f *Flow) Process(ctx context.Context, page *PostedPage, content string, repr confluence.Representation) (Outcome, error) {
	s := f.State
	log := s.logger().With("page", page.Title, "space", page.Space)

	var (
		outcome     Outcome
		parentTitle string
		parent      Resolution
		// whether the parent title came from the dialog rather than config or command line
		parentAsked   bool
		suppliedTried bool
		state         = lookingForPage
	)

	for {
		switch state {
		case lookingForPage:
			s.Echo("Looking for page '%s'", page.Title)
			res, err := f.Resolver.ResolvePage(ctx, page.Title, page.Space)
			if err != nil {
				return outcome, err
			}
			if res.Found {
				log.Debug("found page", "id", res.ID)
				page.PageID = res.ID
				state = updateReady
				continue
			}

			s.Echo("Could not find page '%s' in space %s", page.Title, page.Space)
			if !s.ForceCreate {
				ok, err := s.Confirm("Should the page be created?")
				if err != nil {
					return outcome, err
				}
				if !ok {
					s.Echo("Not creating page")
					return outcome, nil
				}
			}
			state = parentDecision

		case parentDecision:
			if page.ParentTitle != "" {
				if !suppliedTried {
					suppliedTried = true
					parentTitle = page.ParentTitle
					state = parentLookup
					continue
				}
				// The supplied title won't change, so asking again would loop forever.
				s.Echo("Skipping page")
				return outcome, nil
			}

			if s.ForceCreate {
				log.Debug("no parent given, creating in the root of the space")
				parent = NotFound
				state = createReady
				continue
			}

			ok, err := s.Confirm(fmt.Sprintf("Should the script look for a parent in space %s? (N - create in the root)", page.Space))
			if err != nil {
				return outcome, err
			}
			if ok {
				title, err := s.Ask("Which page should the script look for?")
				if err != nil {
					return outcome, err
				}
				parentTitle = title
				parentAsked = true
				state = parentLookup
				continue
			}

			ok, err = s.Confirm(fmt.Sprintf("Create the page in the root of %s?", page.Space))
			if err != nil {
				return outcome, err
			}
			if !ok {
				s.Echo("Page '%s' will not be created, the script will skip the page", page.Title)
				return outcome, nil
			}
			parent = NotFound
			parentAsked = false
			state = createReady

		case parentLookup:
			outcome.ParentAttempts++
			log.Debug("looking for parent", "parent", parentTitle, "attempt", outcome.ParentAttempts)

			res, err := f.Resolver.ResolvePage(ctx, parentTitle, page.Space)
			if err != nil {
				return outcome, err
			}
			if !res.Found {
				s.Echo("Parent page '%s' not found", parentTitle)
				state = parentDecision
				continue
			}

			s.Echo("Found page #%d", res.ID)
			s.Echo("URL is: %s", res.URL)
			parent = res
			state = createReady

		case createReady:
			if parentAsked {
				ok, err := s.Confirm(fmt.Sprintf("Proceed to create the page '%s' under '%s'?", page.Title, parentTitle))
				if err != nil {
					return outcome, err
				}
				if !ok {
					s.Echo("Not creating page")
					return outcome, nil
				}
			}

			s.Echo("Creating page")
			id, err := f.Poster.Post(ctx, content, Target{
				Space:    page.Space,
				Title:    page.Title,
				ParentID: parent.ID,
			}, repr, false, "")
			if err != nil {
				return outcome, err
			}
			if s.MinorEdit {
				log.Debug("minor edit ignored, page was created")
			}

			page.PageID = id
			s.CreatedPages = append(s.CreatedPages, id)
			s.Echo("Created page #%d", id)

			if parent.Found {
				f.verifyChild(ctx, parent.ID, id)
			}

			outcome.Action = Created
			outcome.PageID = id
			return outcome, nil

		case updateReady:
			s.Echo("Updating page #%d", page.PageID)
			id, err := f.Poster.Post(ctx, content, Target{
				Space:  page.Space,
				Title:  page.Title,
				PageID: page.PageID,
			}, repr, s.MinorEdit, page.VersionComment)
			if err != nil {
				return outcome, err
			}
			s.Echo("Updated page #%d", id)

			outcome.Action = Updated
			outcome.PageID = id
			return outcome, nil
		}
	}
}

// verifyChild checks the new page turned up under its parent.  It only logs: the page exists
// either way.
func (f *Flow) verifyChild(ctx context.Context, parentID, id int) {
	log := f.State.logger()
	children, err := f.Poster.Wiki.GetChildIDList(ctx, parentID)
	if err != nil {
		log.Debug("couldn't list children of parent", "parent", parentID, "error", err)
		return
	}
	for _, c := range children {
		if c == id {
			log.Debug("page is listed under parent", "id", id, "parent", parentID)
			return
		}
	}
	log.Warn("created page is not listed under its parent yet", "id", id, "parent", parentID)
}
