// Package navigation decides where a dashboard request ends up after a
// mutation: redirected to the invoice listing, or kept on the current view
// with a form state to render.
package navigation

import (
	"net/url"
	"strings"

	"github.com/ridwanfathin/invoice-dashboard/internal/model"
)

// InvoicesPath is the canonical invoice listing route and the cache path
// every invoice mutation invalidates.
const InvoicesPath = "/dashboard/invoices"

// Stage is the terminal state a mutation reached
type Stage string

const (
	StageValidationFailed Stage = "validation_failed"
	StagePersistFailed    Stage = "persist_failed"
	StageRedirected       Stage = "redirected"
	StageReturned         Stage = "returned"
)

// Outcome is what a mutation hands back to the transport layer.
// Location is set only when Stage is StageRedirected; State only when the
// caller must re-render with errors.
type Outcome struct {
	Stage    Stage
	Location string
	State    *model.FormState
	Err      error
}

// Redirected reports whether control transfers to Location
func (o Outcome) Redirected() bool {
	return o.Stage == StageRedirected
}

// Controller builds outcomes for a fixed listing route
type Controller struct {
	listingPath string
}

// NewController creates a controller that redirects to listingPath
func NewController(listingPath string) *Controller {
	if listingPath == "" {
		listingPath = InvoicesPath
	}
	return &Controller{listingPath: listingPath}
}

// ListingPath returns the route successful mutations redirect to
func (c *Controller) ListingPath() string {
	return c.listingPath
}

// Redirect is the terminal outcome of a successful create or update
func (c *Controller) Redirect() Outcome {
	return Outcome{Stage: StageRedirected, Location: c.listingPath}
}

// Returned is the outcome of a successful delete: the caller stays put
func (c *Controller) Returned() Outcome {
	return Outcome{Stage: StageReturned}
}

// Stay keeps the caller on the form with state to render inline
func (c *Controller) Stay(stage Stage, state *model.FormState, err error) Outcome {
	return Outcome{Stage: stage, State: state, Err: err}
}

// SearchLocation returns path with its query parameters updated for a new
// search term: page resets to 1, and query is set, or removed when the
// term is blank.
func SearchLocation(path string, params url.Values, term string) string {
	next := url.Values{}
	for k, v := range params {
		next[k] = append([]string(nil), v...)
	}

	next.Set("page", "1")
	if term = strings.TrimSpace(term); term != "" {
		next.Set("query", term)
	} else {
		next.Del("query")
	}

	return path + "?" + next.Encode()
}
