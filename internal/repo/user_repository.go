package repo

import (
	"context"
	"errors"

	"github.com/castello-soft/stock-ledger/internal/models"
)

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatedValueUnique is returned when an insert violates a unique constraint.
var ErrDuplicatedValueUnique = errors.New("unique constraint violation")

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}
