package directory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/iipratte/stuber/internal/models"
	"github.com/iipratte/stuber/internal/storage"
)

// Service is the user directory: thin validation and error classification
// over a UserStore. It holds no state of its own.
type Service struct {
	store  storage.UserStore
	logger *slog.Logger
}

func NewService(store storage.UserStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		return nil, s.classify(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (models.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("get user failed", "id", id, "error", err)
		}
		return models.User{}, s.classify(err)
	}
	return u, nil
}

// UpdateUsername trims and persists a new username for the given user.
// The empty string (after trimming) is rejected before the store is touched.
func (s *Service) UpdateUsername(ctx context.Context, id int64, username string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, newError(KindInvalidArgument, "Username is required", nil)
	}
	u, err := s.store.UpdateUsername(ctx, id, username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrUniqueViolation) {
			s.logger.Error("update username failed", "id", id, "error", err)
		}
		return models.User{}, s.classify(err)
	}
	return u, nil
}

// classify maps typed storage errors onto the directory taxonomy with the
// user-facing messages the API has always returned.
func (s *Service) classify(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return newError(KindNotFound, "User not found", err)
	case errors.Is(err, storage.ErrUniqueViolation):
		return newError(KindConflict, "Username already exists", err)
	case errors.Is(err, storage.ErrDatabaseMissing):
		return newError(KindUnavailable, "Database does not exist. Please run the database setup scripts first.", err)
	case errors.Is(err, storage.ErrAuthFailed):
		return newError(KindUnavailable, "Database authentication failed. Please check your .env file credentials.", err)
	case errors.Is(err, storage.ErrRelationMissing):
		return newError(KindUnavailable, "Users table does not exist. Please run the schema.sql script.", err)
	}
	return newError(KindInternal, "Internal server error", err)
}
