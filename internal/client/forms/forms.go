// Package forms implements the create and edit form controllers. Each
// controller owns its draft until submission; a confirmed record returned
// by the remote user service is handed to a Sink (the collection store).
package forms

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/validation"
)

// DefaultUsernamePrefix is prepended to the name to derive a new user's
// username.
const DefaultUsernamePrefix = "USER-"

var (
	ErrSubmitting  = errors.New("submission in progress")
	ErrInvalid     = errors.New("validation failed")
	ErrReadOnly    = errors.New("field is read-only")
	ErrUnknown     = errors.New("unknown field")
	ErrNotAttached = errors.New("no user attached to the edit form")
)

// Field is an input of a form.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldUsername Field = "username"
	FieldStreet   Field = "street"
	FieldCity     Field = "city"
	FieldCompany  Field = "company"
	FieldWebsite  Field = "website"
)

// EditableFields lists the inputs an operator can change, in display order.
var EditableFields = []Field{
	FieldName, FieldEmail, FieldPhone, FieldStreet, FieldCity, FieldCompany, FieldWebsite,
}

// ValidationField maps an input to the validation field its errors are
// reported under.
func ValidationField(f Field) validation.Field {
	switch f {
	case FieldStreet, FieldCity:
		return validation.FieldAddress
	default:
		return validation.Field(f)
	}
}

// Phase is the controller state.
//
//	Editing -> Validating -> (Editing | Submitting) -> (Succeeded | Editing)
//
// The edit controller skips Validating.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Sink receives confirmed records.
type Sink interface {
	Merge(u models.User)
}

// DeriveUsername builds the username of a new user from its name.
func DeriveUsername(prefix, name string) string {
	return prefix + name
}

// InvalidError carries the per-field failures of a rejected submission.
type InvalidError struct {
	Errors validation.Errors
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalid, e.Errors.Error())
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

// setField writes value into the draft. Username is never written here.
func setField(d *models.Draft, f Field, value string) error {
	switch f {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldStreet:
		d.Address.Street = value
	case FieldCity:
		d.Address.City = value
	case FieldCompany:
		d.Company = value
	case FieldWebsite:
		d.Website = value
	case FieldUsername:
		return fmt.Errorf("%s: %w", f, ErrReadOnly)
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknown)
	}
	return nil
}

// FieldValue reads f from d.
func FieldValue(d models.Draft, f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldUsername:
		return d.Username
	case FieldStreet:
		return d.Address.Street
	case FieldCity:
		return d.Address.City
	case FieldCompany:
		return d.Company
	case FieldWebsite:
		return d.Website
	default:
		return ""
	}
}

// guard is embedded in both controllers; it owns the draft, the errors and
// the phase.
type guard struct {
	draft  models.Draft
	errors validation.Errors
	phase  Phase
}

func (g *guard) checkIdle() error {
	if g.phase == PhaseSubmitting || g.phase == PhaseValidating {
		return ErrSubmitting
	}
	return nil
}

// validateLocked moves through Validating and either back to Editing with
// the failures recorded, or on to Submitting.
func (g *guard) validateLocked() error {
	g.phase = PhaseValidating
	errs := validation.Validate(g.draft)
	if !errs.Empty() {
		g.errors = errs
		g.phase = PhaseEditing
		return &InvalidError{Errors: errs}
	}
	g.errors = nil
	g.phase = PhaseSubmitting
	return nil
}
