// Package store holds the collection store: the authoritative, ordered,
// in-memory list of users behind the list view.
//
// Views never read the store's fields directly. They Subscribe to change
// notifications and pull a Snapshot after each one.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// Remote is the subset of the remote user service the store calls itself.
type Remote interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Snapshot is an immutable copy of the store state.
type Snapshot struct {
	Users   []models.User
	Loading bool
	Err     error
}

// Listener is called after every state change with a fresh snapshot.
// Listeners run on the goroutine that changed the state, outside the store
// lock, so they may call back into the store.
type Listener func(Snapshot)

type Store struct {
	remote Remote
	logger logging.Logger

	mu        sync.Mutex
	users     []models.User
	loading   bool
	err       error
	listeners map[int]Listener
	nextSub   int
}

func New(remote Remote, logger logging.Logger) *Store {
	return &Store{
		remote:    remote,
		logger:    logger.With("component", "store"),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Users:   cloneUsers(s.users),
		Loading: s.loading,
		Err:     s.err,
	}
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Get returns the record with the given identifier.
func (s *Store) Get(id int64) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.users[i].Clone(), true
	}
	return models.User{}, false
}

// Load replaces the whole sequence with the remote list. Loading is true
// for the duration of the call; on failure the sequence is left empty and
// the error is kept in the state and returned.
func (s *Store) Load(ctx context.Context) error {
	s.update(func() {
		s.loading = true
		s.err = nil
	})

	users, err := s.remote.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "load users failed", "error", err)
		s.update(func() {
			s.loading = false
			s.users = nil
			s.err = err
		})
		return fmt.Errorf("load users: %w", err)
	}

	s.logger.Info(ctx, "users loaded", "count", len(users))
	s.update(func() {
		s.loading = false
		s.users = cloneUsers(users)
	})
	return nil
}

// Remove deletes id remotely and, once the call succeeds, drops the matching
// record. On failure the sequence is untouched.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.remote.DeleteUser(ctx, id); err != nil {
		s.logger.Error(ctx, "delete user failed", "user_id", id, "error", err)
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	s.update(func() {
		if i := s.indexLocked(id); i >= 0 {
			s.users = append(s.users[:i:i], s.users[i+1:]...)
		}
	})
	return nil
}

// Merge inserts u when its identifier is new and replaces the existing
// record otherwise. Other entries keep their order.
func (s *Store) Merge(u models.User) {
	s.update(func() {
		if i := s.indexLocked(u.ID); i >= 0 {
			s.users[i] = u.Clone()
			return
		}
		s.users = append(s.users, u.Clone())
	})
}

// Search filters the current sequence by a case-insensitive substring of
// the name. The stored sequence is not modified; an empty term returns
// every record in order.
func (s *Store) Search(term string) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(term)
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			out = append(out, u.Clone())
		}
	}
	return out
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// update applies fn under the lock and notifies listeners afterwards.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func cloneUsers(in []models.User) []models.User {
	if in == nil {
		return nil
	}
	out := make([]models.User, len(in))
	for i, u := range in {
		out[i] = u.Clone()
	}
	return out
}
