package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// fakeRemote implements Remote for the store tests.
type fakeRemote struct {
	ListRet []models.User
	ListErr error
	// OnList runs inside ListUsers, before it returns.
	OnList func()

	DeleteErr   error
	DeletedIDs  []int64
	ListCalls   int
	DeleteCalls int
}

func (f *fakeRemote) ListUsers(ctx context.Context) ([]models.User, error) {
	f.ListCalls++
	if f.OnList != nil {
		f.OnList()
	}
	return f.ListRet, f.ListErr
}

func (f *fakeRemote) DeleteUser(ctx context.Context, id int64) error {
	f.DeleteCalls++
	f.DeletedIDs = append(f.DeletedIDs, id)
	return f.DeleteErr
}

func seedUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
		{ID: 3, Name: "Clementine Bauch", Email: "Nathan@yesenia.net", Company: &models.Company{Name: "Keebler LLC"}},
	}
}

func newLoadedStore(t *testing.T) (*Store, *fakeRemote) {
	t.Helper()
	fr := &fakeRemote{ListRet: seedUsers()}
	s := New(fr, logging.Discard())
	require.NoError(t, s.Load(context.Background()))
	return s, fr
}

func TestLoad_ReplacesSequenceAndTogglesLoading(t *testing.T) {
	fr := &fakeRemote{ListRet: seedUsers()}
	s := New(fr, logging.Discard())
	s.Merge(models.User{ID: 99, Name: "stale"})

	var seenLoading bool
	fr.OnList = func() { seenLoading = s.Snapshot().Loading }

	var notes []Snapshot
	s.Subscribe(func(snap Snapshot) { notes = append(notes, snap) })

	require.NoError(t, s.Load(context.Background()))

	assert.True(t, seenLoading, "loading must be set while the call is outstanding")
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
	assert.Equal(t, seedUsers(), snap.Users)

	require.Len(t, notes, 2)
	assert.True(t, notes[0].Loading)
	assert.False(t, notes[1].Loading)
	assert.Len(t, notes[1].Users, 3)
}

func TestLoad_FailureLeavesEmptySequenceAndError(t *testing.T) {
	boom := errors.New("boom")
	fr := &fakeRemote{ListErr: boom}
	s := New(fr, logging.Discard())

	err := s.Load(context.Background())
	require.ErrorIs(t, err, boom)

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Empty(t, snap.Users)
}

func TestLoad_RetryClearsError(t *testing.T) {
	fr := &fakeRemote{ListErr: errors.New("boom")}
	s := New(fr, logging.Discard())
	_ = s.Load(context.Background())

	fr.ListErr = nil
	fr.ListRet = seedUsers()
	fr.OnList = func() {
		snap := s.Snapshot()
		assert.True(t, snap.Loading)
		assert.NoError(t, snap.Err, "loading and error must not both hold")
	}

	require.NoError(t, s.Load(context.Background()))
	assert.NoError(t, s.Snapshot().Err)
	assert.Equal(t, 3, s.Len())
}

func TestRemove_Scenario(t *testing.T) {
	fr := &fakeRemote{ListRet: []models.User{{ID: 1, Name: "Leanne Graham"}}}
	s := New(fr, logging.Discard())

	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.Remove(context.Background(), 1))
	assert.Equal(t, []int64{1}, fr.DeletedIDs)
	assert.Equal(t, 0, s.Len())
}

func TestRemove_OnlyMatchingRecord(t *testing.T) {
	s, _ := newLoadedStore(t)

	require.NoError(t, s.Remove(context.Background(), 2))

	users := s.Snapshot().Users
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(3), users[1].ID)
}

func TestRemove_FailureLeavesSequence(t *testing.T) {
	s, fr := newLoadedStore(t)
	fr.DeleteErr = errors.New("503")

	var notified bool
	s.Subscribe(func(Snapshot) { notified = true })

	err := s.Remove(context.Background(), 2)
	require.ErrorIs(t, err, fr.DeleteErr)
	assert.Equal(t, seedUsers(), s.Snapshot().Users)
	assert.False(t, notified)
	assert.Equal(t, 1, fr.DeleteCalls, "no retry")
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s, _ := newLoadedStore(t)
	require.NoError(t, s.Remove(context.Background(), 42))
	assert.Equal(t, 3, s.Len())
}

func TestMerge_InsertAndReplace(t *testing.T) {
	s, _ := newLoadedStore(t)

	s.Merge(models.User{ID: 11, Name: "Alice"})
	s.Merge(models.User{ID: 2, Name: "Ervin H."})

	users := s.Snapshot().Users
	require.Len(t, users, 4)
	assert.Equal(t, []int64{1, 2, 3, 11}, ids(users))
	assert.Equal(t, "Ervin H.", users[1].Name)
}

func TestMerge_Idempotent(t *testing.T) {
	once, _ := newLoadedStore(t)
	twice, _ := newLoadedStore(t)

	u := models.User{ID: 11, Name: "Alice", Company: &models.Company{Name: "Acme"}}
	once.Merge(u)
	twice.Merge(u)
	twice.Merge(u)

	assert.Equal(t, once.Snapshot().Users, twice.Snapshot().Users)
}

func TestMerge_CopiesRecord(t *testing.T) {
	s := New(&fakeRemote{}, logging.Discard())
	u := models.User{ID: 1, Company: &models.Company{Name: "Acme"}}
	s.Merge(u)

	u.Company.Name = "changed"
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Acme", got.CompanyName())
}

func TestSearch(t *testing.T) {
	s, _ := newLoadedStore(t)

	assert.Equal(t, seedUsers(), s.Search(""))
	assert.Equal(t, []int64{1}, ids(s.Search("LEANNE")))
	assert.Equal(t, []int64{2, 3}, ids(s.Search("in")))
	assert.Empty(t, s.Search("nobody"))

	assert.Equal(t, 3, s.Len(), "search must not mutate the sequence")
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := New(&fakeRemote{}, logging.Discard())

	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot) { calls++ })
	s.Merge(models.User{ID: 1})
	unsubscribe()
	s.Merge(models.User{ID: 2})

	assert.Equal(t, 1, calls)
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	s := New(&fakeRemote{}, logging.Discard())

	var lens []int
	s.Subscribe(func(Snapshot) { lens = append(lens, s.Len()) })
	s.Merge(models.User{ID: 1})

	assert.Equal(t, []int{1}, lens)
}

func ids(users []models.User) []int64 {
	out := make([]int64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}
