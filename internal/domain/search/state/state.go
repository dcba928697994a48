package state

import (
	"strings"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/failure"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/result"
)

// Region is the main content area shown below the search form.
type Region int

// Main regions, in precedence order.
const (
	RegionNone Region = iota
	RegionResults
	RegionEmpty
)

func (r Region) String() string {
	switch r {
	case RegionResults:
		return "results"
	case RegionEmpty:
		return "empty"
	default:
		return "none"
	}
}

// State is a snapshot of the search view.
type State struct {
	Query   string
	Results []result.Result
	Loading bool
	Err     *failure.Error
	// Seq is the sequence number of the latest dispatched search, 0 before the first.
	Seq uint64
}

// MainRegion picks what to show: results if any, else the empty-state
// message when idle with a query, else nothing.
func (s *State) MainRegion() Region {
	if len(s.Results) > 0 {
		return RegionResults
	}
	if !s.Loading && s.Query != "" {
		return RegionEmpty
	}
	return RegionNone
}

// ShowError reports whether the error banner is visible. It does not depend
// on MainRegion: stale results stay visible under the banner.
func (s *State) ShowError() bool { return s.Err != nil }

// CanSubmit reports whether the submit action is enabled.
func (s *State) CanSubmit() bool {
	return !s.Loading && strings.TrimSpace(s.Query) != ""
}

// Clone returns a copy that shares no mutable slices with s.
func (s *State) Clone() State {
	c := *s
	if s.Results != nil {
		c.Results = make([]result.Result, len(s.Results))
		copy(c.Results, s.Results)
	}
	return c
}
