package repository

import (
	"context"

	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
)

// UserRepository is the persistence port for User accounts.
type UserRepository interface {
	// Create inserts the user. Returns domain.ErrEmailAlreadyExists when the
	// email is taken.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
