// Package ui implements the interactive TUI for playlist management.
//
// The [Model] coordinates the two view flows over the playlist store: the
// aggregate playlist list and the single-playlist detail view with its
// add-song search dialog. The flows keep separate view state and talk to the
// server only through the store contract, so the refetch-after-mutate
// discipline holds for both.
package ui
