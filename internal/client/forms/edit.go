package forms

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/validation"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// Updater replaces a user on the remote user service.
type Updater interface {
	UpdateUser(ctx context.Context, id int64, u models.User) (*models.User, error)
}

// EditForm drives the edit flow for one attached record. The identifier and
// username are read-only; the name does not re-derive the username.
type EditForm struct {
	remote Updater
	sink   Sink
	logger logging.Logger

	mu     sync.Mutex
	record *models.User
	guard
}

func NewEditForm(remote Updater, sink Sink, logger logging.Logger) *EditForm {
	return &EditForm{
		remote: remote,
		sink:   sink,
		logger: logger.With("component", "edit_form"),
	}
}

// Attach opens the form for u. The draft is seeded only when u is not the
// record already attached, so a reopened form keeps unsaved input.
func (f *EditForm) Attach(u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkIdle(); err != nil {
		return err
	}
	if f.record != nil && f.record.ID == u.ID {
		return nil
	}
	c := u.Clone()
	f.record = &c
	f.guard = guard{draft: models.DraftFromUser(u)}
	return nil
}

// Open reports whether a record is attached.
func (f *EditForm) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record != nil
}

// ID returns the attached identifier, or 0.
func (f *EditForm) ID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record == nil {
		return 0
	}
	return f.record.ID
}

// Close detaches the record and drops the draft without a remote call.
func (f *EditForm) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkIdle(); err != nil {
		return err
	}
	f.record = nil
	f.guard = guard{}
	return nil
}

func (f *EditForm) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.record == nil {
		return ErrNotAttached
	}
	if err := f.checkIdle(); err != nil {
		return err
	}
	if err := setField(&f.draft, field, value); err != nil {
		return err
	}
	f.phase = PhaseEditing
	return nil
}

func (f *EditForm) Draft() models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *EditForm) Errors() validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors
}

func (f *EditForm) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Submit sends the full draft as an update of the attached record. The
// draft is not validated: stored records need not follow the create rules
// (service phones look like "1-770-736-8031 x56442"). On success the confirmed record is merged into the sink and the form closes;
// on failure it stays open with the draft intact and the sink untouched.
func (f *EditForm) Submit(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	if f.record == nil {
		f.mu.Unlock()
		return nil, ErrNotAttached
	}
	if err := f.checkIdle(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.errors = nil
	f.phase = PhaseSubmitting
	id := f.record.ID
	payload := f.draft.ToUser(id)
	payload.Username = f.record.Username
	f.mu.Unlock()

	updated, err := f.remote.UpdateUser(ctx, id, payload)
	if err != nil {
		f.logger.Error(ctx, "update user failed", "user_id", id, "error", err)
		f.mu.Lock()
		f.phase = PhaseEditing
		f.mu.Unlock()
		return nil, err
	}

	confirmed := *updated
	confirmed.ID = id
	f.sink.Merge(confirmed)
	f.logger.Info(ctx, "user updated", "user_id", id)

	f.mu.Lock()
	f.record = nil
	f.guard = guard{phase: PhaseSucceeded}
	f.mu.Unlock()

	return &confirmed, nil
}
