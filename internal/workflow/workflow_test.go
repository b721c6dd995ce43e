package workflow

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Villa717/sf241--react--restapi/internal/collection"
	"github.com/Villa717/sf241--react--restapi/internal/fakeapi"
	"github.com/Villa717/sf241--react--restapi/internal/remote"
)

// mockAPI records calls and returns scripted results.
type mockAPI struct {
	mu      sync.Mutex
	posts   []remote.Post
	listErr error

	createFn func(remote.NewPost) (remote.Post, error)
	updateFn func(remote.Post) (remote.Post, error)
	deleteFn func(int64) error

	creates []remote.NewPost
	updates []remote.Post
	deletes []int64
}

func (m *mockAPI) ListPosts(ctx context.Context) ([]remote.Post, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]remote.Post(nil), m.posts...), nil
}

func (m *mockAPI) CreatePost(ctx context.Context, draft remote.NewPost) (remote.Post, error) {
	m.mu.Lock()
	m.creates = append(m.creates, draft)
	m.mu.Unlock()
	if m.createFn != nil {
		return m.createFn(draft)
	}
	return remote.Post{ID: 101, Title: draft.Title, Body: draft.Body}, nil
}

func (m *mockAPI) UpdatePost(ctx context.Context, post remote.Post) (remote.Post, error) {
	m.mu.Lock()
	m.updates = append(m.updates, post)
	m.mu.Unlock()
	if m.updateFn != nil {
		return m.updateFn(post)
	}
	return post, nil
}

func (m *mockAPI) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.deletes = append(m.deletes, id)
	m.mu.Unlock()
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockAPI) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.creates) + len(m.updates) + len(m.deletes)
}

var _ remote.PostsAPI = (*mockAPI)(nil)

func samplePosts(n int) []remote.Post {
	return fakeapi.Seed(n)
}

func newLoaded(t *testing.T, api *mockAPI) *Workflow {
	t.Helper()
	w := New(api, collection.NewStore(collection.DefaultPageSize, zerolog.Nop()), zerolog.Nop())
	require.NoError(t, w.Load(context.Background()))
	return w
}

func ids(posts []remote.Post) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestNew_StartsComposingWithEmptyDraft(t *testing.T) {
	w := New(&mockAPI{}, collection.NewStore(0, zerolog.Nop()), zerolog.Nop())

	assert.Equal(t, ModeComposing, w.Mode())
	assert.Equal(t, ComposeDraft{}, w.Draft())
	assert.NoError(t, w.LastError())
}

func TestSubmitCreate_InsertsAtFrontAndResetsDraft(t *testing.T) {
	api := &mockAPI{posts: samplePosts(10)}
	w := newLoaded(t, api)

	w.UpdateDraftField(FieldTitle, "A")
	w.UpdateDraftField(FieldBody, "B")
	require.NoError(t, w.SubmitCreate(context.Background()))

	snap := w.Store().Snapshot()
	require.Equal(t, 11, snap.Len())
	assert.Equal(t, remote.Post{ID: 101, Title: "A", Body: "B"}, snap.Posts[0])
	assert.Equal(t, int64(1), snap.Posts[1].ID)
	assert.Equal(t, ModeComposing, w.Mode())
	assert.Equal(t, ComposeDraft{}, w.Draft())
	require.Len(t, api.creates, 1)
	assert.Equal(t, remote.NewPost{Title: "A", Body: "B"}, api.creates[0])
}

func TestSubmitCreate_MissingFieldNeverCallsRemote(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		body      string
		wantField string
	}{
		{name: "both empty", wantField: "title"},
		{name: "empty title", body: "B", wantField: "title"},
		{name: "empty body", title: "A", wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{posts: samplePosts(3)}
			w := newLoaded(t, api)
			before := w.Store().Snapshot()

			w.UpdateDraftField(FieldTitle, tt.title)
			w.UpdateDraftField(FieldBody, tt.body)
			err := w.SubmitCreate(context.Background())

			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.wantField, valErr.Field)

			assert.Zero(t, api.calls())
			assert.Equal(t, ComposeDraft{Title: tt.title, Body: tt.body}, w.Draft())
			assert.Equal(t, before.Posts, w.Store().Snapshot().Posts)
			assert.Equal(t, err, w.LastError())
		})
	}
}

func TestSubmitCreate_WhitespaceCountsAsContent(t *testing.T) {
	api := &mockAPI{posts: samplePosts(3)}
	w := newLoaded(t, api)

	w.UpdateDraftField(FieldTitle, " ")
	w.UpdateDraftField(FieldBody, "B")
	require.NoError(t, w.SubmitCreate(context.Background()))

	require.Len(t, api.creates, 1)
	assert.Equal(t, remote.NewPost{Title: " ", Body: "B"}, api.creates[0])
	assert.Equal(t, int64(101), w.Store().Snapshot().Posts[0].ID)
	assert.Equal(t, ComposeDraft{}, w.Draft())
	assert.NoError(t, w.LastError())
}

func TestSubmitCreate_WhileEditingIsRejected(t *testing.T) {
	api := &mockAPI{posts: samplePosts(3)}
	w := newLoaded(t, api)
	w.SelectForEdit(api.posts[1])

	err := w.SubmitCreate(context.Background())

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "mode", valErr.Field)
	assert.Zero(t, api.calls())
	assert.Equal(t, ModeEditing, w.Mode())
}

func TestSubmitCreate_RemoteFailureLeavesStateUnchanged(t *testing.T) {
	cause := errors.New("boom")
	api := &mockAPI{
		posts:    samplePosts(3),
		createFn: func(remote.NewPost) (remote.Post, error) { return remote.Post{}, cause },
	}
	w := newLoaded(t, api)
	w.UpdateDraftField(FieldTitle, "A")
	w.UpdateDraftField(FieldBody, "B")

	err := w.SubmitCreate(context.Background())

	require.Error(t, err)
	assert.True(t, IsRemoteError(err))
	assert.ErrorIs(t, err, cause)
	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, OpCreate, rerr.Op)
	assert.Equal(t, ComposeDraft{Title: "A", Body: "B"}, w.Draft())
	assert.Equal(t, []int64{1, 2, 3}, ids(w.Store().Snapshot().Posts))
	assert.Equal(t, err, w.LastError())
	assert.Zero(t, w.State().Pending)
}

func TestSelectForEdit_ThenCancel(t *testing.T) {
	api := &mockAPI{posts: samplePosts(10)}
	w := newLoaded(t, api)
	before := w.Store().Snapshot()

	w.SelectForEdit(api.posts[6])
	require.Equal(t, ModeEditing, w.Mode())
	edit, ok := w.Draft().(EditDraft)
	require.True(t, ok)
	assert.Equal(t, int64(7), edit.Post.ID)

	w.Cancel()
	assert.Equal(t, ModeComposing, w.Mode())
	assert.Equal(t, ComposeDraft{}, w.Draft())
	assert.Equal(t, before.Posts, w.Store().Snapshot().Posts)
	assert.Zero(t, api.calls())
}

func TestSelectForEdit_ReplacesSelection(t *testing.T) {
	api := &mockAPI{posts: samplePosts(5)}
	w := newLoaded(t, api)

	w.SelectForEdit(api.posts[0])
	w.UpdateDraftField(FieldTitle, "unsaved")
	w.SelectForEdit(api.posts[3])

	edit, ok := w.Draft().(EditDraft)
	require.True(t, ok)
	assert.Equal(t, api.posts[3], edit.Post)
}

func TestEditDraftIsACopy(t *testing.T) {
	api := &mockAPI{posts: samplePosts(5)}
	w := newLoaded(t, api)

	w.SelectForEdit(api.posts[2])
	w.UpdateDraftField(FieldTitle, "changed")

	p, ok := w.Store().Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "post 3", p.Title)
}

func TestCancel_WhileComposingClearsDraft(t *testing.T) {
	w := New(&mockAPI{}, collection.NewStore(0, zerolog.Nop()), zerolog.Nop())
	w.UpdateDraftField(FieldTitle, "A")
	w.UpdateDraftField(FieldBody, "B")

	w.Cancel()

	assert.Equal(t, ComposeDraft{}, w.Draft())
}

func TestSubmitUpdate_ReplacesInPlace(t *testing.T) {
	api := &mockAPI{posts: samplePosts(10)}
	w := newLoaded(t, api)

	w.SelectForEdit(api.posts[6])
	w.UpdateDraftField(FieldTitle, "X")
	require.NoError(t, w.SubmitUpdate(context.Background()))

	snap := w.Store().Snapshot()
	require.Equal(t, 10, snap.Len())
	assert.Equal(t, int64(7), snap.Posts[6].ID)
	assert.Equal(t, "X", snap.Posts[6].Title)
	assert.Equal(t, "body of post 7", snap.Posts[6].Body)
	assert.Equal(t, ModeComposing, w.Mode())

	require.Len(t, api.updates, 1)
	assert.Equal(t, remote.Post{ID: 7, UserID: 1, Title: "X", Body: "body of post 7"}, api.updates[0])
}

func TestSubmitUpdate_WhileComposingIsNoop(t *testing.T) {
	api := &mockAPI{posts: samplePosts(3)}
	w := newLoaded(t, api)
	w.UpdateDraftField(FieldTitle, "A")

	require.NoError(t, w.SubmitUpdate(context.Background()))
	assert.Zero(t, api.calls())
	assert.Equal(t, ComposeDraft{Title: "A"}, w.Draft())
}

func TestSubmitUpdate_RemoteFailureKeepsEditing(t *testing.T) {
	api := &mockAPI{
		posts:    samplePosts(10),
		updateFn: func(remote.Post) (remote.Post, error) { return remote.Post{}, errors.New("status 500") },
	}
	w := newLoaded(t, api)
	w.SelectForEdit(api.posts[6])
	w.UpdateDraftField(FieldTitle, "X")

	err := w.SubmitUpdate(context.Background())

	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, OpUpdate, rerr.Op)
	assert.Equal(t, int64(7), rerr.ID)
	assert.Contains(t, rerr.Error(), "update post #7")

	edit, ok := w.Draft().(EditDraft)
	require.True(t, ok)
	assert.Equal(t, "X", edit.Post.Title)
	p, _ := w.Store().Lookup(7)
	assert.Equal(t, "post 7", p.Title)
}

func TestSubmitUpdate_ResponseWithoutIDKeepsEditedID(t *testing.T) {
	api := &mockAPI{
		posts: samplePosts(3),
		updateFn: func(p remote.Post) (remote.Post, error) {
			return remote.Post{Title: p.Title, Body: p.Body}, nil
		},
	}
	w := newLoaded(t, api)
	w.SelectForEdit(api.posts[1])
	w.UpdateDraftField(FieldBody, "new body")

	require.NoError(t, w.SubmitUpdate(context.Background()))

	p, ok := w.Store().Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "new body", p.Body)
}

func TestDeletePost_RemovesAndIsIdempotent(t *testing.T) {
	api := &mockAPI{posts: samplePosts(10)}
	w := newLoaded(t, api)

	require.NoError(t, w.DeletePost(context.Background(), 3))
	assert.Equal(t, 9, w.Store().Snapshot().Len())
	_, ok := w.Store().Lookup(3)
	assert.False(t, ok)

	require.NoError(t, w.DeletePost(context.Background(), 3))
	assert.Equal(t, 9, w.Store().Snapshot().Len())
	assert.Equal(t, []int64{3, 3}, api.deletes)
}

func TestDeletePost_AbsentIDIsNoop(t *testing.T) {
	api := &mockAPI{posts: []remote.Post{{ID: 1}, {ID: 2}}}
	w := newLoaded(t, api)

	require.NoError(t, w.DeletePost(context.Background(), 7))
	assert.Equal(t, []int64{1, 2}, ids(w.Store().Snapshot().Posts))
	assert.NoError(t, w.LastError())
}

func TestDeletePost_RemoteFailureKeepsPost(t *testing.T) {
	api := &mockAPI{
		posts:    samplePosts(3),
		deleteFn: func(int64) error { return errors.New("offline") },
	}
	w := newLoaded(t, api)

	err := w.DeletePost(context.Background(), 2)

	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, OpDelete, rerr.Op)
	assert.Equal(t, []int64{1, 2, 3}, ids(w.Store().Snapshot().Posts))
}

func TestLoad_FailureIsRecordedAsFetchError(t *testing.T) {
	api := &mockAPI{listErr: errors.New("dns")}
	w := New(api, collection.NewStore(0, zerolog.Nop()), zerolog.Nop())

	err := w.Load(context.Background())

	require.Error(t, err)
	assert.True(t, collection.IsFetchError(err))
	assert.Equal(t, err, w.LastError())
	assert.False(t, w.Store().Snapshot().Loaded)
}

func TestSuccessfulCommandClearsLastError(t *testing.T) {
	api := &mockAPI{posts: samplePosts(3)}
	w := newLoaded(t, api)

	require.Error(t, w.SubmitCreate(context.Background()))
	require.Error(t, w.LastError())

	require.NoError(t, w.DeletePost(context.Background(), 1))
	assert.NoError(t, w.LastError())
}

func TestDismissError(t *testing.T) {
	w := New(&mockAPI{}, collection.NewStore(0, zerolog.Nop()), zerolog.Nop())
	require.Error(t, w.SubmitCreate(context.Background()))

	w.DismissError()

	assert.NoError(t, w.LastError())
}

func TestSubscribe_ReceivesTransitions(t *testing.T) {
	w := New(&mockAPI{}, collection.NewStore(0, zerolog.Nop()), zerolog.Nop())
	ch, cancel := w.Subscribe(8)
	defer cancel()

	w.SelectForEdit(remote.Post{ID: 4, Title: "t"})
	w.Cancel()

	first := <-ch
	second := <-ch
	assert.Equal(t, ModeEditing, first.Mode)
	assert.Equal(t, ModeComposing, second.Mode)
	assert.Greater(t, second.Version, first.Version)
}

func TestUpdateDraftField_UnchangedValuePublishesNothing(t *testing.T) {
	w := New(&mockAPI{}, collection.NewStore(0, zerolog.Nop()), zerolog.Nop())
	w.UpdateDraftField(FieldTitle, "A")
	ch, cancel := w.Subscribe(4)
	defer cancel()

	w.UpdateDraftField(FieldTitle, "A")

	select {
	case c := <-ch:
		t.Fatalf("unexpected change %+v", c)
	default:
	}
}

func TestWorkflow_AgainstFakeService(t *testing.T) {
	srv := fakeapi.New(fakeapi.Seed(15), zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := remote.NewClient(ts.URL, remote.Options{})
	require.NoError(t, err)
	w := New(client, collection.NewStore(collection.DefaultPageSize, zerolog.Nop()), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, w.Load(ctx))
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(w.Store().Snapshot().Posts))

	w.UpdateDraftField(FieldTitle, "hello")
	w.UpdateDraftField(FieldBody, "world")
	require.NoError(t, w.SubmitCreate(ctx))
	assert.Equal(t, int64(16), w.Store().Snapshot().Posts[0].ID)

	p, _ := w.Store().Lookup(4)
	w.SelectForEdit(p)
	w.UpdateDraftField(FieldTitle, "renamed")
	require.NoError(t, w.SubmitUpdate(ctx))
	p, _ = w.Store().Lookup(4)
	assert.Equal(t, "renamed", p.Title)

	require.NoError(t, w.DeletePost(ctx, 4))
	_, ok := w.Store().Lookup(4)
	assert.False(t, ok)
	assert.Len(t, srv.Posts(), 15)

	// Editing a post the server no longer has surfaces the 404.
	w.SelectForEdit(remote.Post{ID: 4, Title: "ghost", Body: "b"})
	err = w.SubmitUpdate(ctx)
	assert.True(t, IsRemoteError(err))
	assert.Contains(t, err.Error(), "404")
}
