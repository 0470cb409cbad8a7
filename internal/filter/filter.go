package filter

import (
	"net/url"
	"strings"

	"github.com/searchdeck/searchdeck/internal/config"
	"github.com/searchdeck/searchdeck/internal/models"
)

// Filter drops results matching a blocklist of keywords or domains.
// Both lists are copied at construction and immutable afterwards, and
// Apply is a pure function over its input.
type Filter struct {
	keywords []string
	domains  map[string]struct{}
}

// New creates a filter from configuration. Keywords are lowered once so
// matching stays case-insensitive without per-result allocation.
func New(cfg *config.FilterConfig) *Filter {
	f := &Filter{
		keywords: make([]string, 0, len(cfg.Keywords)),
		domains:  make(map[string]struct{}, len(cfg.Domains)),
	}
	for _, kw := range cfg.Keywords {
		if kw == "" {
			continue
		}
		f.keywords = append(f.keywords, strings.ToLower(kw))
	}
	for _, d := range cfg.Domains {
		if d == "" {
			continue
		}
		f.domains[strings.ToLower(d)] = struct{}{}
	}
	return f
}

// Apply returns the results that survive both blocklist rules,
// preserving order. The input slice is never mutated.
func (f *Filter) Apply(results []models.Result) []models.Result {
	kept := make([]models.Result, 0, len(results))
	for _, r := range results {
		if f.blockedByKeyword(r) || f.blockedByDomain(r) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// blockedByKeyword matches case-insensitive substring containment
// against the title or the snippet
func (f *Filter) blockedByKeyword(r models.Result) bool {
	if len(f.keywords) == 0 {
		return false
	}
	name := strings.ToLower(r.Name)
	snippet := strings.ToLower(r.Snippet)
	for _, kw := range f.keywords {
		if strings.Contains(name, kw) || strings.Contains(snippet, kw) {
			return true
		}
	}
	return false
}

// blockedByDomain matches the exact hostname of the resolved link, not
// suffixes: sub.example.com is not blocked by an example.com entry.
// A link that cannot be parsed or has no hostname is excluded outright
// (fail-closed) instead of propagating a parse error.
func (f *Filter) blockedByDomain(r models.Result) bool {
	u, err := url.Parse(r.URL)
	if err != nil || u.Hostname() == "" {
		return true
	}
	if len(f.domains) == 0 {
		return false
	}
	_, blocked := f.domains[strings.ToLower(u.Hostname())]
	return blocked
}
