// Package detail loads a single user for the focused detail view.
package detail

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// Messages shown to the operator in the Failed state.
const (
	MessageNotFound = "User not found."
	MessageFailed   = "Failed to fetch user data."
)

// Status is the loader state. The zero value is Loading, so a loader that
// was never asked to load shows the loading indicator.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is what the detail view renders. User is set only when Ready and
// Message only when Failed.
type State struct {
	Status  Status
	ID      int64
	User    *models.User
	Message string
}

// Getter fetches one user from the remote user service.
type Getter interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// Loader fetches one user at a time. Every LoadByID call takes a new
// generation; a response that arrives after a newer call started is dropped,
// so the state always reflects the latest requested identifier.
type Loader struct {
	getter Getter
	logger logging.Logger

	mu         sync.Mutex
	generation uint64
	state      State
	listeners  map[int]func(State)
	nextSub    int
}

func NewLoader(getter Getter, logger logging.Logger) *Loader {
	return &Loader{
		getter:    getter,
		logger:    logger.With("component", "detail"),
		listeners: make(map[int]func(State)),
	}
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneState(l.state)
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (l *Loader) Subscribe(fn func(State)) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.listeners[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

// LoadByID resets the state to Loading for id, fetches the record and moves
// to Ready or Failed. It returns the state the call settled in, which is the
// newer call's state if this response turned out to be stale. There is no
// retry; call again to reload.
func (l *Loader) LoadByID(ctx context.Context, id int64) State {
	gen := l.begin(id)

	u, err := l.getter.GetUser(ctx, id)

	next := State{ID: id}
	if err != nil {
		next.Status = StatusFailed
		next.Message = MessageFailed
		if errors.Is(err, client.ErrNotFound) {
			next.Message = MessageNotFound
		}
		l.logger.Error(ctx, "get user failed", "user_id", id, "error", err)
	} else {
		next.Status = StatusReady
		c := u.Clone()
		next.User = &c
	}

	return l.finish(ctx, gen, next)
}

func (l *Loader) begin(id int64) uint64 {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.state = State{Status: StatusLoading, ID: id}
	listeners := l.listenersLocked()
	snap := cloneState(l.state)
	l.mu.Unlock()

	notify(listeners, snap)
	return gen
}

func (l *Loader) finish(ctx context.Context, gen uint64, next State) State {
	l.mu.Lock()
	if gen != l.generation {
		current := cloneState(l.state)
		l.mu.Unlock()
		l.logger.Debug(ctx, "stale detail response dropped", "user_id", next.ID)
		return current
	}
	l.state = next
	listeners := l.listenersLocked()
	snap := cloneState(l.state)
	l.mu.Unlock()

	notify(listeners, snap)
	return snap
}

func (l *Loader) listenersLocked() []func(State) {
	out := make([]func(State), 0, len(l.listeners))
	for _, fn := range l.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(State), s State) {
	for _, fn := range listeners {
		fn(s)
	}
}

func cloneState(s State) State {
	if s.User != nil {
		c := s.User.Clone()
		s.User = &c
	}
	return s
}
