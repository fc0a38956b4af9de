// Package services contains the HTTP clients for the two remote
// collaborators of the plx client.
//
// [CatalogService] queries the song catalog's free-text search endpoint and
// normalizes every historical response shape into canonical [models.Song]
// records. [PlaylistService] talks to the playlist persistence service, which
// is the single source of truth for playlist state; it performs no local
// bookkeeping of its own.
//
// Both clients keep the same contract at their boundary: context-aware
// requests, wrapped sentinel errors from internal/shared, and no panics past
// the client.
package services
