package ports

import (
	"context"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

// UserRepository is the persistence interface of the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// AuthService implements registration, login and identity lookup.
type AuthService interface {
	// Register creates an identity and returns it with a freshly issued token.
	Register(ctx context.Context, email, password, role string) (*domain.User, string, error)
	// Login authenticates and returns the identity with a fresh token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
