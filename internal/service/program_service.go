package service

import (
	"context"
	"fmt"

	"eduhub/internal/repository"
)

// ProgramService exposes the program catalog for admin listings.
type ProgramService interface {
	ListPrograms(ctx context.Context) ([]Recommendation, error)
}

type programService struct {
	recommender *recommendationService
}

// NewProgramService creates a new program service.
func NewProgramService(programRepo repository.ProgramRepository) ProgramService {
	return &programService{recommender: &recommendationService{programRepo: programRepo}}
}

// ListPrograms returns every program with its university resolved.
func (s *programService) ListPrograms(ctx context.Context) ([]Recommendation, error) {
	programs, err := s.recommender.programRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return s.recommender.resolve(ctx, programs)
}
