// package repositories provides the local persistence layer.
//
// Playlist state is never cached here; the playlist store always refetches it
// from the persistence service. The only thing worth keeping locally is the
// search-history log of queries the user has issued.
package repositories
