package collection

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Villa717/sf241--react--restapi/internal/events"
	"github.com/Villa717/sf241--react--restapi/internal/remote"
)

// DefaultPageSize bounds the collection right after a load.
const DefaultPageSize = 10

// Op names the mutation carried by a Change.
type Op string

const (
	OpLoad    Op = "load"
	OpInsert  Op = "insert"
	OpReplace Op = "replace"
	OpRemove  Op = "remove"
)

// Change is published after every mutation of the collection.
type Change struct {
	Op      Op
	ID      int64 // zero for OpLoad
	Version uint64
}

// Lister fetches the full remote collection. *remote.Client implements it.
type Lister interface {
	ListPosts(ctx context.Context) ([]remote.Post, error)
}

// Snapshot is a point-in-time copy of the collection.
type Snapshot struct {
	Posts    []remote.Post
	Loaded   bool
	LoadedAt time.Time
	Version  uint64
}

// Len returns the number of posts.
func (s Snapshot) Len() int {
	return len(s.Posts)
}

// Store owns the local, ordered, id-unique list of posts. The zero value is
// ready to use with DefaultPageSize.
type Store struct {
	PageSize int
	Logger   zerolog.Logger

	mu       sync.RWMutex
	snapshot Snapshot
	changes  events.Feed[Change]
}

// NewStore returns a Store truncating loads to pageSize entries.
func NewStore(pageSize int, logger zerolog.Logger) *Store {
	return &Store{
		PageSize: pageSize,
		Logger:   logger.With().Str("component", "collection").Logger(),
	}
}

// Load replaces the collection with the first PageSize posts returned by src,
// in server order. On failure the collection is untouched and a *FetchError
// is returned.
func (s *Store) Load(ctx context.Context, src Lister) error {
	posts, err := src.ListPosts(ctx)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("load failed; keeping previous collection")
		return &FetchError{Cause: err}
	}

	limit := s.pageSize()
	if len(posts) > limit {
		posts = posts[:limit]
	}
	loaded := clonePosts(posts)

	s.mu.Lock()
	s.snapshot.Posts = loaded
	s.snapshot.Loaded = true
	s.snapshot.LoadedAt = time.Now()
	s.snapshot.Version++
	version := s.snapshot.Version
	s.mu.Unlock()

	s.Logger.Info().Int("count", len(loaded)).Msg("collection loaded")
	s.changes.Publish(Change{Op: OpLoad, Version: version})
	return nil
}

// InsertAtFront prepends a post returned by a successful create. The server
// is trusted as the id authority.
func (s *Store) InsertAtFront(post remote.Post) {
	s.mu.Lock()
	posts := make([]remote.Post, 0, len(s.snapshot.Posts)+1)
	posts = append(posts, post)
	posts = append(posts, s.snapshot.Posts...)
	s.snapshot.Posts = posts
	s.snapshot.Version++
	version := s.snapshot.Version
	s.mu.Unlock()

	s.changes.Publish(Change{Op: OpInsert, ID: post.ID, Version: version})
}

// Replace swaps the entry with post's id in place and reports whether one was
// found. An unmatched id leaves the collection unchanged.
func (s *Store) Replace(post remote.Post) bool {
	s.mu.Lock()
	idx := indexOf(s.snapshot.Posts, post.ID)
	if idx < 0 {
		s.mu.Unlock()
		s.Logger.Warn().Int64("id", post.ID).Msg("replace for unknown post ignored")
		return false
	}
	posts := clonePosts(s.snapshot.Posts)
	posts[idx] = post
	s.snapshot.Posts = posts
	s.snapshot.Version++
	version := s.snapshot.Version
	s.mu.Unlock()

	s.changes.Publish(Change{Op: OpReplace, ID: post.ID, Version: version})
	return true
}

// RemoveByID drops the entry with the given id, if present, and reports
// whether anything was removed.
func (s *Store) RemoveByID(id int64) bool {
	s.mu.Lock()
	idx := indexOf(s.snapshot.Posts, id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	posts := make([]remote.Post, 0, len(s.snapshot.Posts)-1)
	posts = append(posts, s.snapshot.Posts[:idx]...)
	posts = append(posts, s.snapshot.Posts[idx+1:]...)
	s.snapshot.Posts = posts
	s.snapshot.Version++
	version := s.snapshot.Version
	s.mu.Unlock()

	s.changes.Publish(Change{Op: OpRemove, ID: id, Version: version})
	return true
}

// Lookup returns the post with the given id.
func (s *Store) Lookup(id int64) (remote.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := indexOf(s.snapshot.Posts, id); idx >= 0 {
		return s.snapshot.Posts[idx], true
	}
	return remote.Post{}, false
}

// Snapshot returns a copy of the current collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Posts = clonePosts(s.snapshot.Posts)
	return snap
}

// Subscribe returns a channel receiving a Change after every mutation, and a
// cancel func that closes it.
func (s *Store) Subscribe(buffer int) (<-chan Change, func()) {
	return s.changes.Subscribe(buffer)
}

func (s *Store) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultPageSize
}

func indexOf(posts []remote.Post, id int64) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePosts(posts []remote.Post) []remote.Post {
	if len(posts) == 0 {
		return nil
	}
	dup := make([]remote.Post, len(posts))
	copy(dup, posts)
	return dup
}
