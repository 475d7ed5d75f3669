// Package session holds the single source of truth for the authenticated
// identity and the signed-in user's denormalized post cache.
//
// The store is mutated only through its action methods; views never write
// state directly. Every mutation is synchronous and total, and the resulting
// state is persisted to a JSON file so a reload restores the last known
// session without re-authentication. Token validity is not re-verified here;
// an expired token only surfaces when a later API call fails with an
// authorization error.
package session

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/structura-app/structura-cli/internal/models"
)

// Store is the persisted session state. All methods are safe for concurrent
// use, though in practice mutations are driven from the single command loop.
type Store struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger

	state state
}

// state is the durable part of the store. Loading/Err are transient and not
// persisted across reloads.
type state struct {
	CurrentUser *models.User  `json:"currentUser"`
	UserPosts   []models.Post `json:"userPosts"`

	Loading bool   `json:"-"`
	Err     string `json:"-"`
}

// NewStore creates a store persisting to path. Call Load before first use.
func NewStore(path string, log *zap.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load rehydrates the store from disk. A missing file is not an error; the
// store starts signed out.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = state{UserPosts: []models.Post{}}
			return nil
		}
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&s.state); err != nil {
		return err
	}
	if s.state.UserPosts == nil {
		s.state.UserPosts = []models.Post{}
	}
	return nil
}

// persist writes the current state to disk. Mutations are total, so a failed
// write is logged rather than unwinding the in-memory change.
func (s *Store) persist() {
	f, err := os.Create(s.path)
	if err != nil {
		s.log.Error("session persist failed", zap.Error(err))
		return
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(&s.state); err != nil {
		s.log.Error("session persist failed", zap.Error(err))
	}
}

// Begin marks an authentication attempt as in flight and clears any previous
// error.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Err = ""
}

// AuthSuccess replaces the current identity with u and clears loading/error.
func (s *Store) AuthSuccess(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = &u
	s.state.Loading = false
	s.state.Err = ""
	s.persist()
	s.log.Info("signed in", zap.String("user", u.Username))
}

// AuthFailure records the server's error message verbatim. The identity is
// left untouched.
func (s *Store) AuthFailure(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.state.Err = msg
}

// SignOut clears the identity and empties the post cache unconditionally,
// regardless of whether the server round-trip succeeded.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = nil
	s.state.UserPosts = []models.Post{}
	s.state.Loading = false
	s.state.Err = ""
	s.persist()
	s.log.Info("signed out")
}

// ProfileUpdated merges the server-returned user fields into the current
// identity while preserving the existing token. A no-op when signed out.
func (s *Store) ProfileUpdated(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return
	}
	token := s.state.CurrentUser.Token
	if u.Token == "" {
		u.Token = token
	}
	s.state.CurrentUser = &u
	s.state.Loading = false
	s.state.Err = ""
	s.persist()
}

// AccountDeleted clears the identity and post cache after the server
// confirmed deletion.
func (s *Store) AccountDeleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = nil
	s.state.UserPosts = []models.Post{}
	s.state.Loading = false
	s.state.Err = ""
	s.persist()
}

// SetUserPosts replaces the whole post cache with the server's collection.
func (s *Store) SetUserPosts(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if posts == nil {
		posts = []models.Post{}
	}
	s.state.UserPosts = posts
	s.persist()
}

// UpsertPost replaces the cached post with the same ID, preserving list
// order, or appends when the post is new.
func (s *Store) UpsertPost(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.UserPosts {
		if s.state.UserPosts[i].ID == p.ID {
			s.state.UserPosts[i] = p
			s.persist()
			return
		}
	}
	s.state.UserPosts = append(s.state.UserPosts, p)
	s.persist()
}

// RemovePost filters the post with the given ID out of the cache.
func (s *Store) RemovePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.UserPosts[:0]
	for _, p := range s.state.UserPosts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.state.UserPosts = kept
	s.persist()
}

// User returns a copy of the current identity, or nil when signed out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return nil
	}
	u := *s.state.CurrentUser
	return &u
}

// Token returns the bearer token of the current session, or "" when signed
// out. Implements the api client's token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return ""
	}
	return s.state.CurrentUser.Token
}

// Posts returns a copy of the post cache.
func (s *Store) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.state.UserPosts))
	copy(out, s.state.UserPosts)
	return out
}

// Loading reports whether an authentication attempt is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Loading
}

// Error returns the last recorded error message, or "".
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Err
}
