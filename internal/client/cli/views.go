package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/usermanager/internal/client/detail"
	"github.com/dmitrijs2005/usermanager/internal/client/forms"
	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/validation"
)

var fieldLabels = map[forms.Field]string{
	forms.FieldName:     "Name",
	forms.FieldEmail:    "Email",
	forms.FieldPhone:    "Phone",
	forms.FieldUsername: "Username",
	forms.FieldStreet:   "Street",
	forms.FieldCity:     "City",
	forms.FieldCompany:  "Company",
	forms.FieldWebsite:  "Website",
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderUsers prints the list view. filter is echoed above the table when
// the list is narrowed by a search.
func renderUsers(w io.Writer, users []models.User, filter string) {
	if filter != "" {
		fmt.Fprintf(w, "Search: %q\n", filter)
	}
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Phone)
	}
	_ = tw.Flush()
}

func renderDetail(w io.Writer, s detail.State) {
	switch s.Status {
	case detail.StatusLoading:
		fmt.Fprintln(w, "Loading...")
	case detail.StatusFailed:
		fmt.Fprintln(w, s.Message)
	case detail.StatusReady:
		u := s.User
		fmt.Fprintf(w, "%s (#%d)\n", u.Name, u.ID)

		tw := newTable(w)
		fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
		fmt.Fprintf(tw, "Phone:\t%s\n", u.Phone)
		fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
		fmt.Fprintf(tw, "Website:\t%s\n", u.Website)
		fmt.Fprintf(tw, "Address:\t%s, %s\n", u.Address.Street, u.Address.City)
		fmt.Fprintf(tw, "Company:\t%s\n", u.CompanyName())
		_ = tw.Flush()
	}
}

func renderErrors(w io.Writer, errs validation.Errors) {
	for _, f := range errs.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", f, errs.Message(f))
	}
}

// invalidFields lists the form inputs to ask for again after errs.
func invalidFields(errs validation.Errors) []forms.Field {
	var out []forms.Field
	for _, f := range forms.EditableFields {
		if _, bad := errs[forms.ValidationField(f)]; bad {
			out = append(out, f)
		}
	}
	return out
}
