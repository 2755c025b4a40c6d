// Package validation checks a draft user against the field rules the front
// end enforces before any remote call is made.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

// Field names a validated part of the draft.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
	FieldCompany Field = "company"
	FieldWebsite Field = "website"
)

// Kind classifies a failed rule.
type Kind string

const (
	KindTooShort      Kind = "too_short"
	KindInvalidFormat Kind = "invalid_format"
	KindRequired      Kind = "required"
)

const minLength = 3

var (
	// \s in RE2 is [\t\n\f\r ] only; \v, \p{Z} and U+FEFF cover the rest of the
	// Unicode whitespace an email local part or domain must not contain.
	emailRe   = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	websiteRe = regexp.MustCompile(`^(https?://)?[\w-]+(\.[\w-]+)+[/#?]?.*$`)
)

// FieldError is the outcome of one failed rule.
type FieldError struct {
	Kind    Kind
	Message string
}

// Errors maps a field to its failure. An empty map means the draft can be
// submitted.
type Errors map[Field]FieldError

// Empty reports whether no rule failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Message returns the human-readable message for f, or "".
func (e Errors) Message(f Field) string {
	return e[f].Message
}

// Fields returns the failed fields in a stable order.
func (e Errors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, string(f)+": "+e[f].Message)
	}
	return strings.Join(parts, "; ")
}

// Validate runs every rule against d. All rules are evaluated; one failure
// never hides another.
func Validate(d models.Draft) Errors {
	errs := Errors{}

	if utf8.RuneCountInString(d.Name) < minLength {
		errs[FieldName] = FieldError{Kind: KindTooShort, Message: "Name must be at least 3 characters long."}
	}

	if !emailRe.MatchString(d.Email) {
		errs[FieldEmail] = FieldError{Kind: KindInvalidFormat, Message: "Please enter a valid email address."}
	}

	if !phoneRe.MatchString(d.Phone) {
		errs[FieldPhone] = FieldError{Kind: KindInvalidFormat, Message: "Phone number must be 10 digits."}
	}

	if d.Address.Street == "" || d.Address.City == "" {
		errs[FieldAddress] = FieldError{Kind: KindRequired, Message: "Street and City are required."}
	}

	if d.Company != "" && utf8.RuneCountInString(d.Company) < minLength {
		errs[FieldCompany] = FieldError{Kind: KindTooShort, Message: "Company name must be at least 3 characters long."}
	}

	if d.Website != "" && !websiteRe.MatchString(d.Website) {
		errs[FieldWebsite] = FieldError{Kind: KindInvalidFormat, Message: "Please enter a valid URL."}
	}

	return errs
}
