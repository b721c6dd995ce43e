// Package collection owns postdeck's local copy of the remote posts
// collection.
//
// # Overview
//
// Store holds an ordered, id-unique list of remote.Post values that mirrors
// the remote service. It is the single source of truth the UI renders from.
// Only the workflow package mutates it, and only after a remote call
// succeeded:
//
//	Load(ctx, lister)   replace everything with the first PageSize posts
//	InsertAtFront(post) newly created post goes first
//	Replace(post)       in-place update, position preserved
//	RemoveByID(id)      idempotent delete
//
// Apart from Load, which calls the injected Lister, every operation is a pure
// in-memory transformation.
//
// # Load Semantics
//
//	// Success: replace, truncate, stamp
//	store.Load(ctx, client)
//	→ snapshot.Posts    = first PageSize items, server order
//	→ snapshot.Loaded   = true
//	→ snapshot.LoadedAt = now
//
//	// Failure: keep old data, report
//	store.Load(ctx, failing)
//	→ snapshot unchanged
//	→ returns *FetchError wrapping the transport error
//
// # Invariants
//
//   - ids are unique; the server is trusted as the id authority on insert
//   - Replace with an unknown id is a no-op (it signals a stale caller)
//   - RemoveByID applied twice equals applying it once
//   - Snapshot returns a defensive copy; callers may mutate it freely
//
// # Change Notification
//
// Every mutation bumps Snapshot.Version and publishes a Change on an
// events.Feed. No-op calls (unknown id in Replace or RemoveByID, failed Load)
// publish nothing. Subscribers re-read Snapshot when a Change arrives; a full
// subscriber buffer drops the event but never blocks the writer.
//
// # Concurrency Model
//
// Store uses a sync.RWMutex. The lock is held only while copying slices,
// never across the network call inside Load. The zero value is ready to use.
package collection
