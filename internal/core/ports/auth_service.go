package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Builder
// fields are ignored unless Role == RoleBuilder.
type RegisterInput struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Phone     string

	CompanyName     string
	LicenseNumber   string
	YearsExperience int
	Specializations []string
	ServiceAreas    []string
	Bio             string
	Website         string
}

// TokenPair is the access/refresh pair issued on register and login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)
	// Refresh exchanges a valid, allow-listed refresh token for a new access
	// token. The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes the user's refresh token. Idempotent.
	Logout(ctx context.Context, userID string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
