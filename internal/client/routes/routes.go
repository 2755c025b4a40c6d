// Package routes is the route surface of the front end: the list view at
// "/" and a detail view per user at "/user/{id}".
package routes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

const (
	ListPath     = "/"
	detailPrefix = "/user/"
)

var ErrUnknownRoute = errors.New("unknown route")

// View identifies a page.
type View int

const (
	ViewList View = iota
	ViewDetail
)

// Route is a resolved path. ID is set for ViewDetail only.
type Route struct {
	View View
	ID   int64
}

// DetailPath returns the detail path for id.
func DetailPath(id int64) string {
	return detailPrefix + models.FormatID(id)
}

// Path renders r back to its path.
func (r Route) Path() string {
	if r.View == ViewDetail {
		return DetailPath(r.ID)
	}
	return ListPath
}

// Parse resolves a path. A trailing slash is ignored.
func Parse(path string) (Route, error) {
	p := strings.TrimSpace(path)
	if p == "" || p == ListPath {
		return Route{View: ViewList}, nil
	}
	p = strings.TrimSuffix(p, "/")

	rest, ok := strings.CutPrefix(p, detailPrefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
	}
	id, err := models.ParseID(rest)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %w", ErrUnknownRoute, err)
	}
	return Route{View: ViewDetail, ID: id}, nil
}
