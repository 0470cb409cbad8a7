package session

import (
	"github.com/searchdeck/searchdeck/internal/models"
)

// Status is the dispatch-cycle state of the session
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// Session is the full client-side search state: current query, category
// tab, page, and the one page of results on display. It is a plain
// value; all mutation happens through the transition functions below so
// the state machine stays testable without any rendering concern.
type Session struct {
	Query        string
	Category     models.Category
	CurrentPage  int
	TotalResults int64
	Results      []models.Result
	Status       Status
	ErrMessage   string
	HasSearched  bool
}

// NewSession returns the initial state: web category, page 1, idle,
// nothing searched yet.
func NewSession() Session {
	return Session{
		Category:    models.CategoryWeb,
		CurrentPage: 1,
		Status:      StatusIdle,
	}
}

// TotalPages returns the number of reachable pages for the current
// total, zero before any results are known.
func (s Session) TotalPages(pageSize int) int {
	if pageSize <= 0 || s.TotalResults <= 0 {
		return 0
	}
	return int((s.TotalResults + int64(pageSize) - 1) / int64(pageSize))
}

// beginDispatch marks the session loading for the given target. A
// category switch clears the displayed results immediately so stale
// items never render under the new tab; every other dispatch keeps the
// current page visible until the response lands.
func beginDispatch(s Session, query string, category models.Category, clearResults bool) Session {
	s.Query = query
	s.Category = category
	s.Status = StatusLoading
	s.ErrMessage = ""
	if clearResults {
		s.Results = nil
		s.TotalResults = 0
		s.CurrentPage = 1
	}
	return s
}

// applySuccess installs one fetched page and returns the session to
// idle
func applySuccess(s Session, page int, results []models.Result, total int64) Session {
	s.Results = results
	s.TotalResults = total
	s.CurrentPage = page
	s.Status = StatusIdle
	s.ErrMessage = ""
	s.HasSearched = true
	return s
}

// applyFailure records the error while preserving the last-good results
func applyFailure(s Session, errMsg string) Session {
	s.Status = StatusError
	s.ErrMessage = errMsg
	return s
}
