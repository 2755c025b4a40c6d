package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermanager/internal/client/forms"
	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

var errNotListed = errors.New("user is not in the list")

// formIface is what the create and edit prompts share.
type formIface interface {
	Set(field forms.Field, value string) error
	Draft() models.Draft
	Submit(ctx context.Context) (*models.User, error)
}

// Create prompts for a new user and submits it. Invalid input is asked for
// again field by field; a failed remote call keeps the input, so running
// create again resumes it.
func (a *App) Create(ctx context.Context) error {
	fmt.Fprintln(a.out, "Create New User (Enter keeps the value in brackets, '-' clears it)")

	u, err := a.fill(ctx, a.create, forms.EditableFields, a.showDerivedUsername)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %q created with id %d.\n", u.Name, u.ID)
	return nil
}

// Edit prompts for changes to a listed user and submits them. A failed
// remote call leaves the form open; edit resumes it and close discards it.
func (a *App) Edit(ctx context.Context, id string) error {
	uid, err := a.selectedID(id)
	if err != nil {
		return err
	}

	if u, ok := a.users.Get(uid); ok {
		if err := a.edit.Attach(u); err != nil {
			fmt.Fprintf(a.out, "Cannot edit user %d: %v\n", uid, err)
			return err
		}
	} else if !a.edit.Open() || a.edit.ID() != uid {
		fmt.Fprintf(a.out, "User %d is not in the list.\n", uid)
		return errNotListed
	}

	d := a.edit.Draft()
	fmt.Fprintf(a.out, "Edit User #%d (username %s is read-only)\n", uid, d.Username)

	u, err := a.fill(ctx, a.edit, forms.EditableFields, nil)
	if err != nil {
		if a.edit.Open() {
			fmt.Fprintf(a.out, "Changes kept. Use 'edit %d' to resume or 'close' to discard them.\n", uid)
		}
		return err
	}
	fmt.Fprintf(a.out, "User %d updated.\n", u.ID)
	return nil
}

// fill prompts for fields, submits and repeats until the submission
// succeeds or the user declines to try again. After a validation failure
// only the failing fields are asked for; after a remote failure the same
// draft is sent again.
func (a *App) fill(ctx context.Context, f formIface, fields []forms.Field, afterSet func(forms.Field, models.Draft)) (*models.User, error) {
	for {
		for _, field := range fields {
			current := forms.FieldValue(f.Draft(), field)
			v, err := GetWithDefault(a.reader, fieldLabels[field], current, a.out)
			if err != nil {
				return nil, err
			}
			if err := f.Set(field, v); err != nil {
				fmt.Fprintf(a.out, "Cannot set %s: %v\n", fieldLabels[field], err)
				return nil, err
			}
			if afterSet != nil {
				afterSet(field, f.Draft())
			}
		}

		u, err := f.Submit(ctx)
		if err == nil {
			return u, nil
		}

		var invalid *forms.InvalidError
		if errors.As(err, &invalid) {
			fmt.Fprintln(a.out, "Please fix the following:")
			renderErrors(a.out, invalid.Errors)
			fields = invalidFields(invalid.Errors)
		} else {
			fmt.Fprintf(a.out, "Request failed: %v\n", err)
			fields = nil
		}

		again, cerr := Confirm(a.reader, "Try again?", a.out)
		if cerr != nil {
			return nil, cerr
		}
		if !again {
			return nil, err
		}
	}
}

func (a *App) showDerivedUsername(field forms.Field, d models.Draft) {
	if field == forms.FieldName {
		fmt.Fprintf(a.out, "Username: %s\n", d.Username)
	}
}
