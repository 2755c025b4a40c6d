package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/config"
	"github.com/dmitrijs2005/usermanager/internal/client/forms"
	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/routes"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// ------------ helpers ------------

type fakeClient struct {
	users  []models.User
	nextID int64

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	created []models.User
	updated []models.User
	deleted []int64
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			c := u.Clone()
			return &c, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeClient) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	f.created = append(f.created, u)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	return &u, nil
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, u models.User) (*models.User, error) {
	f.updated = append(f.updated, u)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u.ID = id
	return &u, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func sampleUsers() []models.User {
	return []models.User{
		{
			ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz",
			Phone: "1-770-736-8031 x56442", Address: models.Address{Street: "Kulas Light", City: "Gwenborough"},
			Company: &models.Company{Name: "Romaguera-Crona"}, Website: "hildegard.org",
		},
		{
			ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv",
			Phone: "010-692-6593 x09125", Address: models.Address{Street: "Victor Plains", City: "Wisokyburgh"},
			Company: &models.Company{Name: "Deckow-Crist"}, Website: "anastasia.net",
		},
	}
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

// newTestApp returns an App over fc with script as stdin. The list is
// loaded and the output buffer cleared before it is returned.
func newTestApp(t *testing.T, fc *fakeClient, script string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	a := newApp(cfg, logging.Discard(), fc, strings.NewReader(script), &out)
	if fc.listErr == nil {
		require.NoError(t, a.Reload(context.Background()))
	}
	out.Reset()
	return a, &out
}

// ------------ tests ------------

func TestReload_RendersList(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, "")

	require.NoError(t, a.Reload(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Loading users...")
	assert.Contains(t, s, "NAME")
	assert.Contains(t, s, "Leanne Graham")
	assert.Contains(t, s, "Shanna@melissa.tv")
	assert.Equal(t, 2, a.users.Len())
}

func TestReload_Failure(t *testing.T) {
	fc := &fakeClient{listErr: client.ErrUnavailable}
	a, out := newTestApp(t, fc, "")

	err := a.Reload(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, out.String(), "Failed to load users")
	assert.Zero(t, a.users.Len())
}

func TestSearch_FiltersAndClears(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, "")
	ctx := context.Background()

	require.NoError(t, a.Search(ctx, "LEAN"))
	assert.Contains(t, out.String(), `Search: "LEAN"`)
	assert.Contains(t, out.String(), "Leanne Graham")
	assert.NotContains(t, out.String(), "Ervin Howell")
	assert.Equal(t, 2, a.users.Len(), "search does not touch the stored list")

	out.Reset()
	require.NoError(t, a.Search(ctx, "zzz"))
	assert.Contains(t, out.String(), "No users found.")

	out.Reset()
	require.NoError(t, a.Search(ctx, ""))
	assert.Contains(t, out.String(), "Leanne Graham")
	assert.Contains(t, out.String(), "Ervin Howell")
}

func TestShow_ReadyAndNotFound(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, "")
	ctx := context.Background()

	require.NoError(t, a.Show(ctx, "1"))
	s := out.String()
	assert.Contains(t, s, "Loading...")
	assert.Contains(t, s, "Leanne Graham (#1)")
	assert.Contains(t, s, "Kulas Light, Gwenborough")
	assert.Contains(t, s, "Romaguera-Crona")
	assert.Equal(t, routes.Route{View: routes.ViewDetail, ID: 1}, a.route)

	out.Reset()
	require.NoError(t, a.Show(ctx, "42"))
	assert.Contains(t, out.String(), "User not found.")

	out.Reset()
	require.Error(t, a.Show(ctx, "abc"))
	assert.Contains(t, out.String(), `Invalid user id "abc".`)
}

func TestOpen_Routes(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "/user/2"))
	assert.Contains(t, out.String(), "Ervin Howell (#2)")

	out.Reset()
	require.NoError(t, a.Open(ctx, "/"))
	assert.Equal(t, routes.ViewList, a.route.View)
	assert.Contains(t, out.String(), "Leanne Graham")

	out.Reset()
	err := a.Open(ctx, "/users")
	require.ErrorIs(t, err, routes.ErrUnknownRoute)
	assert.Contains(t, out.String(), "Unknown route")
}

func TestDelete(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, "")
	ctx := context.Background()

	require.NoError(t, a.Delete(ctx, "2"))
	assert.Equal(t, []int64{2}, fc.deleted)
	assert.Equal(t, 1, a.users.Len())
	assert.Contains(t, out.String(), "User 2 deleted.")
	assert.NotContains(t, out.String(), "Ervin Howell")
}

func TestDelete_FailureKeepsList(t *testing.T) {
	fc := &fakeClient{users: sampleUsers(), deleteErr: client.ErrUnavailable}
	a, out := newTestApp(t, fc, "")

	err := a.Delete(context.Background(), "1")
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, 2, a.users.Len())
	assert.Contains(t, out.String(), "Failed to delete user 1")
}

func TestCreate_DerivesUsernameAndMerges(t *testing.T) {
	fc := &fakeClient{users: sampleUsers(), nextID: 10}
	a, out := newTestApp(t, fc, lines("Alice", "alice@example.com", "1234567890", "Main St", "Springfield", "", ""))

	require.NoError(t, a.Create(context.Background()))

	require.Len(t, fc.created, 1)
	assert.Equal(t, "USER-Alice", fc.created[0].Username)
	assert.Zero(t, fc.created[0].ID)
	assert.Nil(t, fc.created[0].Company)

	assert.Contains(t, out.String(), "Username: USER-Alice")
	assert.Contains(t, out.String(), `User "Alice" created with id 11.`)

	assert.Equal(t, 3, a.users.Len())
	u, ok := a.users.Get(11)
	require.True(t, ok)
	assert.Equal(t, "Alice", u.Name)
	assert.False(t, a.hasCreateDraft(), "the create form resets after success")
}

func TestCreate_InvalidThenFixed(t *testing.T) {
	fc := &fakeClient{nextID: 10}
	a, out := newTestApp(t, fc, lines(
		"Jo", "bad", "1234567890", "Main St", "Springfield", "", "",
		"y",
		"Joanna", "jo@example.com",
	))

	require.NoError(t, a.Create(context.Background()))

	s := out.String()
	assert.Contains(t, s, "name: Name must be at least 3 characters long.")
	assert.Contains(t, s, "email: Please enter a valid email address.")

	require.Len(t, fc.created, 1)
	assert.Equal(t, "Joanna", fc.created[0].Name)
	assert.Equal(t, "USER-Joanna", fc.created[0].Username)
	assert.Equal(t, "Main St", fc.created[0].Address.Street)
}

func TestCreate_ShortNameBlockedLocally(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(t, fc, lines("Jo", "jo@example.com", "1234567890", "Main St", "Springfield", "", "", "n"))

	err := a.Create(context.Background())
	require.ErrorIs(t, err, forms.ErrInvalid)
	assert.Empty(t, fc.created)
	assert.True(t, a.hasCreateDraft(), "input is kept for the next attempt")

	require.NoError(t, a.Close(context.Background()))
	assert.False(t, a.hasCreateDraft())
}

func TestCreate_RemoteFailureRetriesSameDraft(t *testing.T) {
	fc := &fakeClient{createErr: client.ErrUnavailable}
	a, out := newTestApp(t, fc, lines("Alice", "alice@example.com", "1234567890", "Main St", "Springfield", "", "", "n"))

	err := a.Create(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, out.String(), "Request failed")
	assert.Len(t, fc.created, 1)
	assert.Equal(t, "Alice", a.create.Draft().Name)
	assert.Zero(t, a.users.Len())
}

func TestEdit_Success(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, lines("Leanne Bell", "", "", "", "", "", ""))

	require.NoError(t, a.Edit(context.Background(), "1"))

	require.Len(t, fc.updated, 1)
	assert.Equal(t, int64(1), fc.updated[0].ID)
	assert.Equal(t, "Bret", fc.updated[0].Username, "username is read-only")
	assert.Equal(t, "Romaguera-Crona", fc.updated[0].CompanyName())
	assert.Equal(t, "1-770-736-8031 x56442", fc.updated[0].Phone, "stored phone is sent unchanged")
	assert.NotContains(t, out.String(), "Please fix the following:")

	u, ok := a.users.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Leanne Bell", u.Name)
	assert.False(t, a.edit.Open(), "edit surface closes after success")
	assert.Contains(t, out.String(), "User 1 updated.")
}

func TestEdit_RemoteFailureKeepsRecordAndForm(t *testing.T) {
	fc := &fakeClient{users: sampleUsers(), updateErr: errors.New("boom")}
	a, out := newTestApp(t, fc, lines("Leanne Bell", "", "", "", "", "", "", "n"))

	err := a.Edit(context.Background(), "1")
	require.Error(t, err)

	u, ok := a.users.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Leanne Graham", u.Name)
	assert.True(t, a.edit.Open())
	assert.Equal(t, "Leanne Bell", a.edit.Draft().Name)
	assert.Contains(t, out.String(), "Changes kept. Use 'edit 1' to resume")

	a.interactive = true
	assert.Equal(t, "um / [edit #1]>", a.prompt())

	require.NoError(t, a.Close(context.Background()))
	assert.False(t, a.edit.Open())
}

func TestEdit_DefaultsToUserOnScreen(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, _ := newTestApp(t, fc, lines("", "", "", "", "", "", ""))
	ctx := context.Background()

	require.NoError(t, a.Show(ctx, "2"))
	require.NoError(t, a.Edit(ctx, ""))

	require.Len(t, fc.updated, 1)
	assert.Equal(t, int64(2), fc.updated[0].ID)
}

func TestEdit_Errors(t *testing.T) {
	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, "")
	ctx := context.Background()

	require.ErrorIs(t, a.Edit(ctx, "99"), errNotListed)
	assert.Contains(t, out.String(), "User 99 is not in the list.")

	require.ErrorIs(t, a.Edit(ctx, ""), errNoUserSelected)
	assert.Empty(t, fc.updated)
}

func TestClose_NothingOpen(t *testing.T) {
	a, out := newTestApp(t, &fakeClient{}, "")

	require.NoError(t, a.Close(context.Background()))
	assert.Contains(t, out.String(), "Nothing to close.")
}

func TestRun_LoadsAndExits(t *testing.T) {
	stubPrintln(t)

	fc := &fakeClient{users: sampleUsers()}
	a, out := newTestApp(t, fc, lines("show 2", "exit"))

	a.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "User Management")
	assert.Contains(t, s, "Leanne Graham")
	assert.Contains(t, s, "Ervin Howell (#2)")
}

func TestPrompt(t *testing.T) {
	a, _ := newTestApp(t, &fakeClient{users: sampleUsers()}, "")
	assert.Empty(t, a.prompt(), "no prompt for piped input")

	a.interactive = true
	assert.Equal(t, "um />", a.prompt())

	require.NoError(t, a.create.Set(forms.FieldName, "Al"))
	a.route = routes.Route{View: routes.ViewDetail, ID: 3}
	assert.Equal(t, "um /user/3 [create]>", a.prompt())
}
