// Package store implements the client-side mirror of server-held playlists.
//
// The [Store] is the single source of truth for what the UI believes about
// the persistence service, and the only place where mutation-then-reload
// happens. Every mutating operation follows one discipline: send the
// mutation, then unconditionally re-read the affected scope before any view
// re-renders. A failed mutation still triggers the re-read, so displayed
// state is never speculative; the server always wins.
//
// The store holds no playlist state across process restarts. It is
// rehydrated from the persistence service on first use and after every
// mutation.
package store
