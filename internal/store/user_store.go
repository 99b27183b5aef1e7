package store

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
)

const usersFile = "users.json"

// UserStore defines persistence access for storefront accounts.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.UserProfilePatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) (bool, error)
	HasAdminAccount(ctx context.Context) (bool, error)
	All(ctx context.Context) ([]domain.User, error)
	Mode() PersistenceMode
}

type userStore struct {
	*collection[domain.User]
}

// NewUserStore returns a JSON-file-backed implementation rooted at dataDir.
func NewUserStore(dataDir string, logger *zap.Logger) UserStore {
	return &userStore{collection: newCollection[domain.User](dataDir, usersFile, logger)}
}

func (s *userStore) Create(_ context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	normalized := NormalizeEmail(email)
	now := time.Now()
	user := domain.User{
		ID:           newRecordID("USER"),
		Name:         strings.TrimSpace(name),
		Email:        normalized,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.update(func(records []domain.User) ([]domain.User, error) {
		for _, existing := range records {
			if existing.Email == normalized {
				return nil, ErrEmailTaken
			}
		}
		return append(records, user), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range s.snapshot() {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *userStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	normalized := NormalizeEmail(email)
	for _, user := range s.snapshot() {
		if user.Email == normalized {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *userStore) UpdateProfile(_ context.Context, id string, patch domain.UserProfilePatch) (*domain.User, error) {
	var updated *domain.User
	err := s.update(func(records []domain.User) ([]domain.User, error) {
		idx := -1
		for i, user := range records {
			if user.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrNotFound
		}

		user := records[idx]
		if patch.Name != nil {
			user.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			normalized := NormalizeEmail(*patch.Email)
			for i, other := range records {
				if i != idx && other.Email == normalized {
					return nil, ErrEmailTaken
				}
			}
			user.Email = normalized
		}
		user.UpdatedAt = time.Now()

		records[idx] = user
		updated = &user
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *userStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return s.update(func(records []domain.User) ([]domain.User, error) {
		for i, user := range records {
			if user.ID == id {
				user.PasswordHash = passwordHash
				user.UpdatedAt = time.Now()
				records[i] = user
				return records, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (s *userStore) Delete(_ context.Context, id string) (bool, error) {
	deleted := false
	err := s.update(func(records []domain.User) ([]domain.User, error) {
		for i, user := range records {
			if user.ID == id {
				deleted = true
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return records, nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *userStore) HasAdminAccount(_ context.Context) (bool, error) {
	for _, user := range s.snapshot() {
		if user.Role == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (s *userStore) All(_ context.Context) ([]domain.User, error) {
	return s.snapshot(), nil
}
