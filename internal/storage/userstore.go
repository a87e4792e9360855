package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/iipratte/stuber/internal/models"
)

// UserStore defines persistence operations for the user directory.
// Errors are drawn from the typed set in errors.go.
type UserStore interface {
	// ListUsers returns all users ordered by id ascending.
	ListUsers(ctx context.Context) ([]models.User, error)
	// GetUser returns the user with the given id or ErrNotFound.
	GetUser(ctx context.Context, id int64) (models.User, error)
	// UpdateUsername persists username (already validated and trimmed by the
	// caller) and returns the updated row. ErrNotFound if id does not exist,
	// ErrUniqueViolation if another user holds the name.
	UpdateUsername(ctx context.Context, id int64, username string) (models.User, error)
}

// MemoryStore is an in-process UserStore used in tests and when running
// without Postgres.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[int64]models.User
}

func NewMemoryStore(seed ...models.User) *MemoryStore {
	m := &MemoryStore{users: make(map[int64]models.User, len(seed))}
	for _, u := range seed {
		m.users[u.ID] = u
	}
	return m
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) UpdateUsername(ctx context.Context, id int64, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	for otherID, other := range m.users {
		if otherID != id && other.Username == username {
			return models.User{}, ErrUniqueViolation
		}
	}
	u.Username = username
	m.users[id] = u
	return u, nil
}
