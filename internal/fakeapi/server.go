// Package fakeapi serves an in-memory posts collection that speaks the same
// JSON shape as jsonplaceholder's /posts resource. It backs local runs of
// postdeck (cmd/fakeposts) and the HTTP-level tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Villa717/sf241--react--restapi/internal/remote"
)

// Server holds the collection. It is safe for concurrent use.
type Server struct {
	mu     sync.Mutex
	posts  []remote.Post
	nextID int64
	logger zerolog.Logger
}

// New returns a Server seeded with a copy of posts. Created posts receive ids
// above the largest seeded id.
func New(posts []remote.Post, logger zerolog.Logger) *Server {
	s := &Server{
		posts:  append([]remote.Post(nil), posts...),
		nextID: 1,
		logger: logger.With().Str("component", "fakeapi").Logger(),
	}
	for _, p := range posts {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// Seed generates n placeholder posts, ten per user, ids starting at 1.
func Seed(n int) []remote.Post {
	posts := make([]remote.Post, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, remote.Post{
			ID:     int64(i),
			UserID: int64((i-1)/10 + 1),
			Title:  fmt.Sprintf("post %d", i),
			Body:   fmt.Sprintf("body of post %d", i),
		})
	}
	return posts
}

// Posts returns a copy of the stored collection.
func (s *Server) Posts() []remote.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]remote.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Handler builds the chi router exposing /posts.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", ww.Status()).
			Msg("served")
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Posts())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	idx := s.indexOf(id)
	var post remote.Post
	if idx >= 0 {
		post = s.posts[idx]
	}
	s.mu.Unlock()

	if idx < 0 {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft struct {
		Title  string `json:"title"`
		Body   string `json:"body"`
		UserID int64  `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	post := remote.Post{ID: s.nextID, UserID: draft.UserID, Title: draft.Title, Body: draft.Body}
	s.nextID++
	s.posts = append(s.posts, post)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var post remote.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	// The path is authoritative for the id.
	post.ID = id

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx >= 0 {
		s.posts[idx] = post
	}
	s.mu.Unlock()

	if idx < 0 {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleDelete acknowledges unknown ids too, like jsonplaceholder does.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, struct{}{})
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id int64) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
