package workflow

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Villa717/sf241--react--restapi/internal/collection"
	"github.com/Villa717/sf241--react--restapi/internal/events"
	"github.com/Villa717/sf241--react--restapi/internal/remote"
)

// Change is published whenever the draft, the last error or the number of
// pending remote calls changes.
type Change struct {
	Mode    Mode
	Version uint64
}

// State is a point-in-time view of the workflow.
type State struct {
	Draft     Draft
	LastError error
	Pending   int
	Version   uint64
}

// Mode returns the mode of the held draft.
func (s State) Mode() Mode {
	if s.Draft == nil {
		return ModeComposing
	}
	return s.Draft.Mode()
}

// Workflow drives the compose/edit state machine against a remote posts API
// and applies successful results to the collection store.
type Workflow struct {
	api    remote.PostsAPI
	store  *collection.Store
	logger zerolog.Logger

	mu      sync.Mutex
	draft   Draft
	lastErr error
	pending int
	version uint64
	changes events.Feed[Change]
}

// New returns a Workflow in the Composing state with an empty draft.
func New(api remote.PostsAPI, store *collection.Store, logger zerolog.Logger) *Workflow {
	return &Workflow{
		api:    api,
		store:  store,
		logger: logger.With().Str("component", "workflow").Logger(),
		draft:  ComposeDraft{},
	}
}

// Store returns the collection the workflow writes to.
func (w *Workflow) Store() *collection.Store {
	return w.store
}

// Load fetches the remote collection into the store. A failure is kept as the
// last error and returned as a *collection.FetchError.
func (w *Workflow) Load(ctx context.Context) error {
	w.begin()
	err := w.store.Load(ctx, w.api)
	w.finish(err)
	return err
}

// SelectForEdit switches to Editing with a copy of post. Selecting while
// already editing replaces the selection.
func (w *Workflow) SelectForEdit(post remote.Post) {
	w.mu.Lock()
	w.draft = EditDraft{Post: post}
	w.mu.Unlock()

	w.logger.Debug().Int64("id", post.ID).Msg("selected for edit")
	w.publish()
}

// UpdateDraftField sets one field of whichever draft is active.
func (w *Workflow) UpdateDraftField(field Field, value string) {
	w.mu.Lock()
	if title, body := Values(w.draft); (field == FieldTitle && title == value) || (field == FieldBody && body == value) {
		w.mu.Unlock()
		return
	}
	w.draft = withField(w.draft, field, value)
	w.mu.Unlock()

	w.publish()
}

// SubmitCreate posts the compose draft. It is rejected without a remote call
// when a field is empty or an edit is in progress. On success the created post
// is inserted at the front of the collection and the draft is reset.
func (w *Workflow) SubmitCreate(ctx context.Context) error {
	w.mu.Lock()
	draft, ok := w.draft.(ComposeDraft)
	if !ok {
		w.mu.Unlock()
		return w.reject(NewValidationError("mode", "finish or cancel the current edit first"))
	}
	if field, missing := draft.missing(); missing {
		w.mu.Unlock()
		return w.reject(NewValidationError(field.String(), "please fill in all fields"))
	}
	w.mu.Unlock()

	w.begin()
	created, err := w.api.CreatePost(ctx, remote.NewPost{Title: draft.Title, Body: draft.Body})
	if err != nil {
		rerr := &RemoteError{Op: OpCreate, Cause: err}
		w.finish(rerr)
		return rerr
	}

	w.store.InsertAtFront(created)
	w.mu.Lock()
	w.draft = ComposeDraft{}
	w.mu.Unlock()
	w.finish(nil)

	w.logger.Info().Int64("id", created.ID).Msg("post created")
	return nil
}

// SubmitUpdate sends the full edit draft. It does nothing while composing.
// On success the returned post replaces its collection entry in place and
// the workflow returns to Composing.
func (w *Workflow) SubmitUpdate(ctx context.Context) error {
	w.mu.Lock()
	draft, ok := w.draft.(EditDraft)
	w.mu.Unlock()
	if !ok {
		return nil
	}

	w.begin()
	updated, err := w.api.UpdatePost(ctx, draft.Post)
	if err != nil {
		rerr := &RemoteError{Op: OpUpdate, ID: draft.Post.ID, Cause: err}
		w.finish(rerr)
		return rerr
	}
	if updated.ID == 0 {
		updated.ID = draft.Post.ID
	}

	w.store.Replace(updated)
	w.mu.Lock()
	w.draft = ComposeDraft{}
	w.mu.Unlock()
	w.finish(nil)

	w.logger.Info().Int64("id", updated.ID).Msg("post updated")
	return nil
}

// Cancel discards the active draft and returns to an empty compose draft.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	prev := w.draft
	w.draft = ComposeDraft{}
	w.mu.Unlock()

	if edit, ok := prev.(EditDraft); ok {
		w.logger.Debug().Int64("id", edit.Post.ID).Msg("edit cancelled")
	}
	w.publish()
}

// DeletePost removes id remotely and then locally. The caller is expected to
// have confirmed the deletion. An id missing from the collection is not an
// error once the remote call succeeds.
func (w *Workflow) DeletePost(ctx context.Context, id int64) error {
	w.begin()
	if err := w.api.DeletePost(ctx, id); err != nil {
		rerr := &RemoteError{Op: OpDelete, ID: id, Cause: err}
		w.finish(rerr)
		return rerr
	}

	w.store.RemoveByID(id)
	w.finish(nil)

	w.logger.Info().Int64("id", id).Msg("post deleted")
	return nil
}

// DismissError clears the last error without running a command.
func (w *Workflow) DismissError() {
	w.mu.Lock()
	if w.lastErr == nil {
		w.mu.Unlock()
		return
	}
	w.lastErr = nil
	w.mu.Unlock()
	w.publish()
}

// Draft returns the active draft.
func (w *Workflow) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Mode returns the active mode.
func (w *Workflow) Mode() Mode {
	return w.Draft().Mode()
}

// LastError returns the error of the most recent failed command, or nil once
// a later remote command succeeded.
func (w *Workflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// State returns draft, last error and pending count in one read.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		Draft:     w.draft,
		LastError: w.lastErr,
		Pending:   w.pending,
		Version:   w.version,
	}
}

// Subscribe returns a channel receiving a Change after every workflow
// transition, and a cancel func that closes it.
func (w *Workflow) Subscribe(buffer int) (<-chan Change, func()) {
	return w.changes.Subscribe(buffer)
}

func (w *Workflow) begin() {
	w.mu.Lock()
	w.pending++
	w.mu.Unlock()
	w.publish()
}

// finish ends a remote command started with begin and records its outcome.
func (w *Workflow) finish(err error) {
	w.mu.Lock()
	if w.pending > 0 {
		w.pending--
	}
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn().Err(err).Msg("command failed")
	}
	w.publish()
}

// reject records a command refused before any remote call.
func (w *Workflow) reject(err error) error {
	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()

	w.logger.Debug().Err(err).Msg("command rejected")
	w.publish()
	return err
}

func (w *Workflow) publish() {
	w.mu.Lock()
	w.version++
	change := Change{Version: w.version}
	if w.draft != nil {
		change.Mode = w.draft.Mode()
	}
	w.mu.Unlock()

	w.changes.Publish(change)
}
