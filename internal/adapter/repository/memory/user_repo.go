package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tharun69CS/EcoFinds/internal/user/domain"
)

type UserRepository struct {
	mutex sync.RWMutex
	users map[domain.ID]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[domain.ID]*domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}

	if user.ID == "" {
		user.ID = domain.ID(uuid.NewString())
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
