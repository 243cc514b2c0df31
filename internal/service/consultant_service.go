package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"eduhub/internal/cache"
	apperrors "eduhub/internal/errors"
	"eduhub/internal/repository"
)

const (
	consultantListCacheKey = "consultants:directory"
	consultantListCacheTTL = 5 * time.Minute
)

// ConsultantService exposes the consultant directory and employment
// updates.
type ConsultantService interface {
	ListConsultants(ctx context.Context) ([]repository.ConsultantRow, error)
	UpdateEmployment(ctx context.Context, consultantID uint, presence, shift string) error
}

type consultantService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewConsultantService creates a new consultant service.
func NewConsultantService(userRepo repository.UserRepository, cache *cache.Client) ConsultantService {
	return &consultantService{userRepo: userRepo, cache: cache}
}

// ListConsultants returns the consultant directory, served from a short
// TTL cache when warm.
func (s *consultantService) ListConsultants(ctx context.Context) ([]repository.ConsultantRow, error) {
	var cached []repository.ConsultantRow
	if hit, _ := s.cache.GetJSON(ctx, consultantListCacheKey, &cached); hit {
		return cached, nil
	}

	consultants, err := s.userRepo.ListConsultants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}

	_ = s.cache.SetJSON(ctx, consultantListCacheKey, consultants, consultantListCacheTTL)
	return consultants, nil
}

// UpdateEmployment updates a consultant's presence and shift and
// invalidates the directory cache. Presence feeds the slot generator's
// daily template, so this is the employment-type switch.
func (s *consultantService) UpdateEmployment(ctx context.Context, consultantID uint, presence, shift string) error {
	if err := s.userRepo.UpdateConsultantEmployment(ctx, consultantID, presence, shift); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrConsultantNotFound
		}
		return fmt.Errorf("update employment: %w", err)
	}

	_ = s.cache.Delete(ctx, consultantListCacheKey)
	return nil
}
