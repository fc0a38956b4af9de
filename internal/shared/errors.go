package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Remote service errors
	ErrFetchFailed      = fmt.Errorf("fetch failed")
	ErrSearchFailed     = fmt.Errorf("search failed")
	ErrMutationFailed   = fmt.Errorf("mutation failed")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrSongNotFound     = fmt.Errorf("song not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrNotConfirmed    = fmt.Errorf("not confirmed")
)
