// Package workflow implements the compose/edit state machine for posts.
//
// # States
//
// The workflow holds exactly one Draft:
//
//	ComposeDraft{Title, Body}  Composing (initial, empty)
//	EditDraft{Post}            Editing a copy of an existing post
//
// Draft is sealed; a type switch over the two variants is exhaustive.
//
// # Transitions
//
//	Composing ── SelectForEdit(p) ──────────────> Editing(p)
//	Editing   ── SelectForEdit(q) ──────────────> Editing(q)
//	Editing   ── Cancel() ──────────────────────> Composing (empty)
//	Editing   ── SubmitUpdate(ctx) ok ──────────> Composing (empty)
//	Composing ── SubmitCreate(ctx) ok ──────────> Composing (empty)
//	any       ── UpdateDraftField(f, v) ────────> same state
//	any       ── DeletePost(ctx, id) ───────────> same state
//
// SubmitCreate refuses empty fields, and refuses to run while editing, with
// a *ValidationError before any network traffic. SubmitUpdate while composing
// does nothing.
//
// # Applying Results
//
// Collection mutations happen only after the remote call succeeded:
//
//	create ok → store.InsertAtFront(result)
//	update ok → store.Replace(result)
//	delete ok → store.RemoveByID(id)
//
// A failed call returns a *RemoteError and leaves both the draft and the
// collection as they were. Every failure, including a *collection.FetchError
// from Load, is also kept as LastError until the next successful remote
// command or DismissError.
//
// # Concurrency
//
// The draft is copied under a mutex, the lock is released for the remote
// call, and the result is applied under the lock again. Overlapping commands
// resolve in completion order. Subscribe delivers a Change after every
// transition, including the start and end of each remote call so the UI can
// show a pending indicator from State().Pending.
package workflow
