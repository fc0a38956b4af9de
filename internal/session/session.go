// Package session holds the per-view search-dialog state.
//
// Both UI flows coordinate over the same playlist store contract; what they
// must never share is mutable view state. A [Search] instance is that state
// made explicit: which playlist is the active add-song target, the current
// query, and the ephemeral result set scoped to it. Handlers receive it as an
// argument instead of reaching for ambient globals.
package session

import "github.com/plxdev/plx/internal/models"

// Search tracks one open add-song flow. At most one playlist is the active
// target at a time; retargeting discards whatever the previous target had
// pending.
type Search struct {
	targetID string
	query    string
	results  []models.Song
}

// NewSearch returns a closed search session.
func NewSearch() *Search {
	return &Search{}
}

// Open makes playlistID the active add-song target. Opening for a different
// playlist replaces the prior target and discards its query and result set.
func (s *Search) Open(playlistID string) {
	if s.targetID != playlistID {
		s.query = ""
		s.results = nil
	}
	s.targetID = playlistID
}

// Close discards the target, query, and result set. Nothing is retained
// across openings.
func (s *Search) Close() {
	s.targetID = ""
	s.query = ""
	s.results = nil
}

// Active reports whether an add-song flow is open.
func (s *Search) Active() bool {
	return s.targetID != ""
}

// TargetID returns the playlist currently targeted by the add-song flow.
func (s *Search) TargetID() string {
	return s.targetID
}

// SetQuery records the pending query string.
func (s *Search) SetQuery(query string) {
	s.query = query
}

// Query returns the pending query string.
func (s *Search) Query() string {
	return s.query
}

// SetResults replaces the result set. Results are scoped to the current
// query; issuing a new query replaces them wholesale.
func (s *Search) SetResults(results []models.Song) {
	s.results = results
}

// Results returns the current ephemeral result set.
func (s *Search) Results() []models.Song {
	return s.results
}
