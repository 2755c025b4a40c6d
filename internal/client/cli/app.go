package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/config"
	"github.com/dmitrijs2005/usermanager/internal/client/detail"
	"github.com/dmitrijs2005/usermanager/internal/client/forms"
	"github.com/dmitrijs2005/usermanager/internal/client/routes"
	"github.com/dmitrijs2005/usermanager/internal/client/store"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger

	users  *store.Store
	detail *detail.Loader
	create *forms.CreateForm
	edit   *forms.EditForm

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	route      routes.Route
	searchTerm string
}

// NewApp builds the App against the remote user service at
// c.APIBaseURL, reading commands from stdin.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	remote, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)
	if err != nil {
		return nil, err
	}

	app := newApp(c, logger, remote, os.Stdin, os.Stdout)
	app.interactive = isTerminal(int(os.Stdin.Fd()))
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, remote client.Client, in io.Reader, out io.Writer) *App {
	users := store.New(remote, logger)

	a := &App{
		config: c,
		logger: logger.With("component", "cli"),
		users:  users,
		detail: detail.NewLoader(remote, logger),
		create: forms.NewCreateForm(remote, users, logger, c.UsernamePrefix),
		edit:   forms.NewEditForm(remote, users, logger),
		reader: bufio.NewReader(in),
		out:    out,
		route:  routes.Route{View: routes.ViewList},
	}

	a.users.Subscribe(a.onUsersChanged)
	a.detail.Subscribe(a.onDetailChanged)

	return a
}

// Run loads the user list and runs the REPL until the user exits or input
// ends.
func (a *App) Run(ctx context.Context) {
	a.logger.Info(ctx, "session started", "api", a.config.APIBaseURL)
	defer a.logger.Info(ctx, "session ended")

	fmt.Fprintln(a.out, "User Management (type 'help' for commands)")
	_ = a.Reload(ctx)
	runREPL(ctx, a, a.prompt, a.reader)
}

// prompt shows the current path and the open form, e.g. "um /user/3 [edit #3]>".
// Non-interactive sessions get no prompt.
func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	var b strings.Builder
	b.WriteString("um ")
	b.WriteString(a.route.Path())
	if a.edit.Open() {
		fmt.Fprintf(&b, " [edit #%d]", a.edit.ID())
	}
	if a.hasCreateDraft() {
		b.WriteString(" [create]")
	}
	b.WriteString(">")
	return b.String()
}

func (a *App) onUsersChanged(s store.Snapshot) {
	if a.route.View != routes.ViewList {
		return
	}
	a.renderList(s)
}

func (a *App) onDetailChanged(s detail.State) {
	if a.route.View != routes.ViewDetail || a.route.ID != s.ID {
		return
	}
	renderDetail(a.out, s)
}

// navigate switches the current view and renders it. The detail view
// triggers a fresh load of its record.
func (a *App) navigate(ctx context.Context, r routes.Route) {
	a.logger.Debug(ctx, "navigate", "path", r.Path())
	a.route = r
	switch r.View {
	case routes.ViewDetail:
		a.detail.LoadByID(ctx, r.ID)
	default:
		a.renderList(a.users.Snapshot())
	}
}

func (a *App) renderList(s store.Snapshot) {
	switch {
	case s.Loading:
		fmt.Fprintln(a.out, "Loading users...")
	case s.Err != nil:
		fmt.Fprintf(a.out, "Failed to load users: %v\n", s.Err)
	case a.searchTerm != "":
		renderUsers(a.out, a.users.Search(a.searchTerm), a.searchTerm)
	default:
		renderUsers(a.out, s.Users, "")
	}
}
