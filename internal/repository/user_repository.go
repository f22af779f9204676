package repository

import (
	"context"

	"github.com/avoronova/sympathy/internal/domain"
)

// UserListFilter carries the /list query parameters down to storage.
// RadiusKm > 0 enables the great-circle distance filter; Latitude and
// Longitude are the requesting user's stored coordinates.
type UserListFilter struct {
	Gender    string
	FirstName string
	LastName  string
	RadiusKm  float64
	Latitude  float64
	Longitude float64
	SortOrder string
	Limit     int
	Offset    int
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateAvatarByEmail(ctx context.Context, email, avatar string) error
	List(ctx context.Context, filter UserListFilter) ([]domain.User, int, error)
	// DeleteAll clears the table. Used only by reset/seed tooling.
	DeleteAll(ctx context.Context) error
}
