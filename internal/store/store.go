package store

import (
	"context"
	"errors"

	"github.com/rgehrsitz/rmgo/internal/domain"
)

// ErrNotFound is returned when no profile has the requested ID.
var ErrNotFound = errors.New("profile not found")

// ProfileStore persists profiles by ID.
type ProfileStore interface {
	Create(ctx context.Context, p domain.Profile) (domain.Profile, error)
	Get(ctx context.Context, id string) (domain.Profile, error)
	Update(ctx context.Context, p domain.Profile) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Close()
}
