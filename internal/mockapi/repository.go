package mockapi

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

var ErrUserNotFound = errors.New("user not found")

// Repository stores the users served by the API.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, u models.User) (*models.User, error)
	Update(ctx context.Context, id int64, u models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryRepository is a Repository backed by an ordered slice. It is safe
// for concurrent use and keeps insertion order. Identifiers are assigned
// sequentially after the highest seeded one and are never reused.
type MemoryRepository struct {
	mu     sync.Mutex
	users  []models.User
	nextID int64
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository returns a repository holding seed.
func NewMemoryRepository(seed ...models.User) *MemoryRepository {
	r := &MemoryRepository{users: make([]models.User, 0, len(seed))}
	for _, u := range seed {
		r.users = append(r.users, u.Clone())
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	u := r.users[i].Clone()
	return &u, nil
}

// Create stores u under a new identifier; any id in u is ignored.
func (r *MemoryRepository) Create(ctx context.Context, u models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	u = u.Clone()
	u.ID = r.nextID
	r.users = append(r.users, u)

	out := u.Clone()
	return &out, nil
}

// Update replaces the user with the given id, keeping its position.
func (r *MemoryRepository) Update(ctx context.Context, id int64, u models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	u = u.Clone()
	u.ID = id
	r.users[i] = u

	out := u.Clone()
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return ErrUserNotFound
	}
	r.users = append(r.users[:i:i], r.users[i+1:]...)
	return nil
}

func (r *MemoryRepository) indexLocked(id int64) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

// SeedUsers returns the sample users the API starts with.
func SeedUsers() []models.User {
	return []models.User{
		{
			ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz",
			Phone:   "1-770-736-8031 x56442",
			Address: models.Address{Street: "Kulas Light", City: "Gwenborough"},
			Company: &models.Company{Name: "Romaguera-Crona"}, Website: "hildegard.org",
		},
		{
			ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv",
			Phone:   "010-692-6593 x09125",
			Address: models.Address{Street: "Victor Plains", City: "Wisokyburgh"},
			Company: &models.Company{Name: "Deckow-Crist"}, Website: "anastasia.net",
		},
		{
			ID: 3, Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net",
			Phone:   "1-463-123-4447",
			Address: models.Address{Street: "Douglas Extension", City: "McKenziehaven"},
			Company: &models.Company{Name: "Romaguera-Jacobson"}, Website: "ramiro.info",
		},
	}
}
