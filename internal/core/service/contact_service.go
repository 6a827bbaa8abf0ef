package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// ContactService persists contact form submissions.
type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	msg.Status = domain.ContactNew
	msg.CreatedAt = time.Now().UTC()

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		s.logger.Error().Err(err).Str("email", msg.Email).Msg("failed to store contact message")
		return nil, err
	}
	s.logger.Info().Str("id", created.ID).Str("subject", created.Subject).Msg("contact message received")
	return created, nil
}
