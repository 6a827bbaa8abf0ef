package ports

import (
	"context"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

// BuilderFilter carries the query parameters for the public builder directory.
type BuilderFilter struct {
	Specialization string
	ServiceArea    string
	Page           int // 1-based
	Limit          int
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// ListBuilders returns a page of active builders matching filter and the
	// total count.
	ListBuilders(ctx context.Context, filter BuilderFilter) ([]*domain.User, int64, error)
}
