package forms

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/validation"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// Creator creates a user on the remote user service.
type Creator interface {
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
}

// CreateForm drives the create flow. Its username is derived from the name
// on every name change and cannot be set directly.
type CreateForm struct {
	remote Creator
	sink   Sink
	logger logging.Logger
	prefix string

	mu sync.Mutex
	guard
}

func NewCreateForm(remote Creator, sink Sink, logger logging.Logger, usernamePrefix string) *CreateForm {
	return &CreateForm{
		remote: remote,
		sink:   sink,
		logger: logger.With("component", "create_form"),
		prefix: usernamePrefix,
	}
}

// Set changes one input. Input is refused while a submission is in flight.
func (f *CreateForm) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkIdle(); err != nil {
		return err
	}
	if err := setField(&f.draft, field, value); err != nil {
		return err
	}
	if field == FieldName {
		f.draft.Username = DeriveUsername(f.prefix, value)
	}
	f.phase = PhaseEditing
	return nil
}

// Draft returns a copy of the draft.
func (f *CreateForm) Draft() models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns the failures of the last rejected submission.
func (f *CreateForm) Errors() validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors
}

func (f *CreateForm) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Submitting reports whether inputs are disabled.
func (f *CreateForm) Submitting() bool {
	return f.Phase() == PhaseSubmitting
}

// Reset discards the draft (explicit cancel).
func (f *CreateForm) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkIdle(); err != nil {
		return err
	}
	f.guard = guard{}
	return nil
}

// Submit validates the draft and, when it passes, creates the user. On
// success the confirmed record is merged into the sink and the form resets.
// On a remote failure the draft is kept for another attempt.
func (f *CreateForm) Submit(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	if err := f.checkIdle(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if err := f.validateLocked(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	payload := f.draft.ToUser(0)
	f.mu.Unlock()

	created, err := f.remote.CreateUser(ctx, payload)
	if err != nil {
		f.logger.Error(ctx, "create user failed", "name", payload.Name, "error", err)
		f.mu.Lock()
		f.phase = PhaseEditing
		f.mu.Unlock()
		return nil, err
	}

	f.sink.Merge(*created)
	f.logger.Info(ctx, "user created", "user_id", created.ID)

	f.mu.Lock()
	f.guard = guard{phase: PhaseSucceeded}
	f.mu.Unlock()

	return created, nil
}
