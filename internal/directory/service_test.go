package directory

import (
	"context"
	"testing"

	"github.com/iipratte/stuber/internal/models"
	"github.com/iipratte/stuber/internal/storage"
)

func seededService() *Service {
	store := storage.NewMemoryStore(
		models.User{ID: 1, Username: "alice", Email: "alice@example.edu"},
		models.User{ID: 2, Username: "bob", Email: "bob@example.edu"},
	)
	return NewService(store, nil)
}

func TestUpdateUsernameTrimsAndPersists(t *testing.T) {
	svc := seededService()
	ctx := context.Background()

	u, err := svc.UpdateUsername(ctx, 1, "  carol  ")
	if err != nil {
		t.Fatal(err)
	}
	if u.Username != "carol" {
		t.Fatalf("expected trimmed username, got %q", u.Username)
	}

	got, err := svc.GetUser(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "carol" {
		t.Fatalf("update not persisted, got %q", got.Username)
	}
	if got.Email != "alice@example.edu" {
		t.Fatalf("email must not change, got %q", got.Email)
	}
}

func TestUpdateUsernameRejectsEmpty(t *testing.T) {
	svc := seededService()
	ctx := context.Background()

	for _, name := range []string{"", "   "} {
		_, err := svc.UpdateUsername(ctx, 1, name)
		if KindOf(err) != KindInvalidArgument {
			t.Fatalf("username %q: expected invalid argument, got %v", name, err)
		}
	}

	// state unchanged
	got, _ := svc.GetUser(ctx, 1)
	if got.Username != "alice" {
		t.Fatalf("state changed on rejected update: %q", got.Username)
	}
}

func TestUpdateUsernameConflict(t *testing.T) {
	svc := seededService()
	ctx := context.Background()

	_, err := svc.UpdateUsername(ctx, 1, "bob")
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Username already exists" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	got, _ := svc.GetUser(ctx, 1)
	if got.Username != "alice" {
		t.Fatalf("state changed on conflict: %q", got.Username)
	}
}

func TestUpdateUsernameNotFound(t *testing.T) {
	svc := seededService()
	_, err := svc.UpdateUsername(context.Background(), 99, "zoe")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := seededService()
	_, err := svc.GetUser(context.Background(), 99)
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "User not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestListUsersSortedAscending(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		users []models.User
	}{
		{"empty", nil},
		{"one", []models.User{{ID: 7, Username: "g", Email: "g@e"}}},
		{"many", []models.User{
			{ID: 3, Username: "c", Email: "c@e"},
			{ID: 1, Username: "a", Email: "a@e"},
			{ID: 2, Username: "b", Email: "b@e"},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(storage.NewMemoryStore(tc.users...), nil)
			got, err := svc.ListUsers(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != len(tc.users) {
				t.Fatalf("expected %d users, got %d", len(tc.users), len(got))
			}
			for i := 0; i+1 < len(got); i++ {
				if got[i].ID >= got[i+1].ID {
					t.Fatalf("not ascending at %d: %+v", i, got)
				}
			}
		})
	}
}

// failingStore returns a fixed error from every operation.
type failingStore struct{ err error }

func (f *failingStore) ListUsers(ctx context.Context) ([]models.User, error) { return nil, f.err }
func (f *failingStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	return models.User{}, f.err
}
func (f *failingStore) UpdateUsername(ctx context.Context, id int64, username string) (models.User, error) {
	return models.User{}, f.err
}

func TestStorageErrorClassification(t *testing.T) {
	for _, tc := range []struct {
		storeErr error
		kind     Kind
		message  string
	}{
		{storage.ErrDatabaseMissing, KindUnavailable, "Database does not exist. Please run the database setup scripts first."},
		{storage.ErrAuthFailed, KindUnavailable, "Database authentication failed. Please check your .env file credentials."},
		{storage.ErrRelationMissing, KindUnavailable, "Users table does not exist. Please run the schema.sql script."},
		{context.DeadlineExceeded, KindInternal, "Internal server error"},
	} {
		svc := NewService(&failingStore{err: tc.storeErr}, nil)
		_, err := svc.ListUsers(context.Background())
		if KindOf(err) != tc.kind {
			t.Fatalf("%v: expected kind %d, got %v", tc.storeErr, tc.kind, err)
		}
		if err.Error() != tc.message {
			t.Fatalf("%v: unexpected message %q", tc.storeErr, err.Error())
		}
	}
}
