package service

import (
	"context"
	"fmt"

	"eduhub/internal/repository"
)

// UserService exposes learner listings for the admin surface.
type UserService interface {
	ListLearners(ctx context.Context) ([]repository.LearnerRow, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// ListLearners lists all learners with their profiles.
func (s *userService) ListLearners(ctx context.Context) ([]repository.LearnerRow, error) {
	learners, err := s.userRepo.ListLearners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	return learners, nil
}
