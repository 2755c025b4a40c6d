package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/routes"
)

var errNoUserSelected = errors.New("no user selected")

// List shows the list view.
func (a *App) List(ctx context.Context) error {
	a.navigate(ctx, routes.Route{View: routes.ViewList})
	return nil
}

// Reload fetches the whole list again. The list view renders the loading
// indicator and then the outcome through the store subscription.
func (a *App) Reload(ctx context.Context) error {
	return a.users.Load(ctx)
}

// Search narrows the list view to users whose name contains term. An empty
// term clears the filter.
func (a *App) Search(ctx context.Context, term string) error {
	a.searchTerm = term
	a.navigate(ctx, routes.Route{View: routes.ViewList})
	return nil
}

// Show opens the detail view of the user with the given id.
func (a *App) Show(ctx context.Context, id string) error {
	uid, err := a.parseID(id)
	if err != nil {
		return err
	}
	a.navigate(ctx, routes.Route{View: routes.ViewDetail, ID: uid})
	return nil
}

// Open navigates by path.
func (a *App) Open(ctx context.Context, path string) error {
	r, err := routes.Parse(path)
	if err != nil {
		fmt.Fprintf(a.out, "Unknown route %q.\n", path)
		return err
	}
	a.navigate(ctx, r)
	return nil
}

// Delete removes the user remotely and then from the list.
func (a *App) Delete(ctx context.Context, id string) error {
	uid, err := a.parseID(id)
	if err != nil {
		return err
	}
	if err := a.users.Remove(ctx, uid); err != nil {
		fmt.Fprintf(a.out, "Failed to delete user %d: %v\n", uid, err)
		return err
	}
	fmt.Fprintf(a.out, "User %d deleted.\n", uid)
	return nil
}

// Close discards whatever form is open without a remote call.
func (a *App) Close(ctx context.Context) error {
	closed := false
	if a.edit.Open() {
		if err := a.edit.Close(); err != nil {
			fmt.Fprintf(a.out, "Cannot close the edit form: %v\n", err)
			return err
		}
		fmt.Fprintln(a.out, "Edit form closed.")
		closed = true
	}
	if a.hasCreateDraft() {
		if err := a.create.Reset(); err != nil {
			fmt.Fprintf(a.out, "Cannot close the create form: %v\n", err)
			return err
		}
		fmt.Fprintln(a.out, "Create form closed.")
		closed = true
	}
	if !closed {
		fmt.Fprintln(a.out, "Nothing to close.")
	}
	return nil
}

func (a *App) parseID(s string) (int64, error) {
	id, err := models.ParseID(s)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid user id %q.\n", s)
		return 0, err
	}
	return id, nil
}

// selectedID resolves the id an edit applies to: the argument if given,
// else the open edit form, else the user on screen.
func (a *App) selectedID(arg string) (int64, error) {
	if arg != "" {
		return a.parseID(arg)
	}
	if a.edit.Open() {
		return a.edit.ID(), nil
	}
	if a.route.View == routes.ViewDetail {
		return a.route.ID, nil
	}
	fmt.Fprintln(a.out, "Usage: edit <id>")
	return 0, errNoUserSelected
}

func (a *App) hasCreateDraft() bool {
	return a.create.Draft() != (models.Draft{})
}
