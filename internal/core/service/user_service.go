package service

import (
	"context"
	"time"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

const (
	defaultBuilderPageLimit = 10
	maxBuilderPageLimit     = 100
)

// UserService implements profile management and the public builder directory.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies the allow-listed profile fields. Role and email
// cannot change; builder-only fields are dropped for customers.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Website != nil {
		user.Website = *update.Website
	}
	if user.IsBuilder() {
		if update.CompanyName != nil {
			user.CompanyName = *update.CompanyName
		}
		if update.Specializations != nil {
			user.Specializations = update.Specializations
		}
		if update.ServiceAreas != nil {
			user.ServiceAreas = update.ServiceAreas
		}
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListBuilders(ctx context.Context, filter ports.BuilderFilter) (*ports.BuilderPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultBuilderPageLimit
	}
	if filter.Limit > maxBuilderPageLimit {
		filter.Limit = maxBuilderPageLimit
	}

	builders, total, err := s.users.ListBuilders(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.BuilderPage{
		Builders:   builders,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *UserService) GetBuilder(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsBuilder() || !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
