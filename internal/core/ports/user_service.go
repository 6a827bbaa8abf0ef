package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// ProfileUpdate carries the fields a user may change after registration.
// Role and email are deliberately absent: both are immutable.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Bio       *string
	Website   *string

	// Builder-only; ignored for customers.
	CompanyName     *string
	Specializations []string
	ServiceAreas    []string
}

// BuilderPage is a page of the public builder directory.
type BuilderPage struct {
	Builders   []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines profile and directory use cases.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	ListBuilders(ctx context.Context, filter BuilderFilter) (*BuilderPage, error)
	GetBuilder(ctx context.Context, id string) (*domain.User, error)
}
