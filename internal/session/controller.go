package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/searchdeck/searchdeck/internal/filter"
	"github.com/searchdeck/searchdeck/internal/models"
	"github.com/searchdeck/searchdeck/internal/search"
	"github.com/searchdeck/searchdeck/pkg/logger"
)

// Dispatcher is the seam between the controller and the query client
type Dispatcher interface {
	Fetch(ctx context.Context, category models.Category, query string, page int) (*models.RawPage, error)
	PageSize() int
}

// Controller drives the session state machine. Every user action that
// triggers a fetch runs the same dispatch -> normalize -> filter cycle;
// the actions differ only in which (category, page) pair they target
// and whether the displayed results are cleared up front.
type Controller struct {
	dispatcher Dispatcher
	normalizer *search.Normalizer
	filter     *filter.Filter

	session Session

	// gen tags each dispatch; a response arriving for an older
	// generation is discarded so the last request issued, not the last
	// response to resolve, determines the surviving state.
	gen uint64
}

// NewController creates a controller with a fresh session
func NewController(dispatcher Dispatcher, normalizer *search.Normalizer, f *filter.Filter) *Controller {
	return &Controller{
		dispatcher: dispatcher,
		normalizer: normalizer,
		filter:     f,
		session:    NewSession(),
	}
}

// Session returns a snapshot of the current state. The results slice is
// shared; callers render it, they do not mutate it.
func (c *Controller) Session() Session {
	return c.session
}

// Submit runs a new search for the current category at page 1. An empty
// query is a no-op.
func (c *Controller) Submit(ctx context.Context, query string) {
	if query == "" {
		return
	}
	c.dispatch(ctx, query, c.session.Category, 1, false)
}

// SwitchCategory changes the tab, clearing displayed results before the
// new page arrives, and re-runs the current query at page 1. Switching
// to the already-active category is a no-op; with no query yet only the
// tab state changes.
func (c *Controller) SwitchCategory(ctx context.Context, category models.Category) {
	if category == c.session.Category {
		return
	}
	if c.session.Query == "" {
		c.session.Category = category
		c.session.Results = nil
		c.session.TotalResults = 0
		c.session.CurrentPage = 1
		return
	}
	c.dispatch(ctx, c.session.Query, category, 1, true)
}

// SetPage fetches an explicit page of the current query. Out-of-range
// pages are silently ignored: no error, no state change.
func (c *Controller) SetPage(ctx context.Context, page int) {
	if page < 1 || page > c.session.TotalPages(c.dispatcher.PageSize()) {
		logger.Debug("page change out of range, ignoring",
			zap.Int("page", page),
			zap.Int("total_pages", c.session.TotalPages(c.dispatcher.PageSize())),
		)
		return
	}
	c.dispatch(ctx, c.session.Query, c.session.Category, page, false)
}

// NextPage advances one page, bounded by the total
func (c *Controller) NextPage(ctx context.Context) {
	c.SetPage(ctx, c.session.CurrentPage+1)
}

// PrevPage goes back one page, bounded at 1
func (c *Controller) PrevPage(ctx context.Context) {
	c.SetPage(ctx, c.session.CurrentPage-1)
}

// dispatch runs one full fetch cycle and folds the outcome into the
// session
func (c *Controller) dispatch(ctx context.Context, query string, category models.Category, page int, clearResults bool) {
	c.gen++
	gen := c.gen

	c.session = beginDispatch(c.session, query, category, clearResults)

	raw, err := c.dispatcher.Fetch(ctx, category, query, page)

	if gen != c.gen {
		// A newer dispatch superseded this one while it was in flight
		logger.Debug("discarding stale response",
			zap.Uint64("gen", gen),
			zap.Uint64("latest", c.gen),
		)
		return
	}

	if err != nil {
		logger.Error("search failed",
			zap.String("category", string(category)),
			zap.String("query", query),
			zap.Int("page", page),
			zap.Error(err),
		)
		c.session = applyFailure(c.session, "Search request failed. Please try again.")
		return
	}

	results := c.filter.Apply(c.normalizer.NormalizePage(raw, category))
	c.session = applySuccess(c.session, page, results, raw.Total)

	logger.Info("page applied",
		zap.String("category", string(category)),
		zap.Int("page", page),
		zap.Int("result_count", len(results)),
		zap.Int64("total", raw.Total),
	)
}
