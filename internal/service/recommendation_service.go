package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"eduhub/internal/model"
	"eduhub/internal/repository"
)

// DefaultRecommendationLimit caps result sets when the caller sends no
// usable limit.
const DefaultRecommendationLimit = 10

// Recommendation is a program surfaced to a learner, with its
// university resolved.
type Recommendation struct {
	ProgramID      uint            `json:"program_id"`
	ProgramName    string          `json:"program_name"`
	DegreeLevel    string          `json:"degree_level"`
	Mode           string          `json:"mode"`
	Duration       string          `json:"duration"`
	Fee            decimal.Decimal `json:"fee"`
	AreaOfStudy    string          `json:"area_of_study"`
	Requirements   string          `json:"requirements"`
	UniversityID   uint            `json:"university_id"`
	UniversityName string          `json:"university_name"`
}

// RecommendationService matches programs to learner criteria.
type RecommendationService interface {
	Recommend(ctx context.Context, areasOfInterest interface{}, degreeLevel, mode string, limit int) ([]Recommendation, error)
}

type recommendationService struct {
	programRepo repository.ProgramRepository
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(programRepo repository.ProgramRepository) RecommendationService {
	return &recommendationService{programRepo: programRepo}
}

// NormalizeAreas turns a comma-separated string or a string list into a
// lowercase trimmed slice, dropping empties.
func NormalizeAreas(areasOfInterest interface{}) []string {
	var raw []string
	switch v := areasOfInterest.(type) {
	case nil:
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	areas := make([]string, 0, len(raw))
	for _, area := range raw {
		area = strings.ToLower(strings.TrimSpace(area))
		if area != "" {
			areas = append(areas, area)
		}
	}
	return areas
}

// CoerceLimit clamps a caller-supplied limit to the default when it is
// not a positive number.
func CoerceLimit(limit int) int {
	if limit < 1 {
		return DefaultRecommendationLimit
	}
	return limit
}

// Recommend filters programs on area (substring OR), degree level and
// mode. When the strict query is empty it falls back to the area-only
// query, then to an unfiltered head of the table, so the result is
// never empty while any program exists.
func (s *recommendationService) Recommend(ctx context.Context, areasOfInterest interface{}, degreeLevel, mode string, limit int) ([]Recommendation, error) {
	areas := NormalizeAreas(areasOfInterest)
	limit = CoerceLimit(limit)

	programs, err := s.programRepo.FindByFilters(ctx, areas, degreeLevel, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("strict filter query: %w", err)
	}

	if len(programs) == 0 && len(areas) > 0 {
		programs, err = s.programRepo.FindByFilters(ctx, areas, "", "", limit)
		if err != nil {
			return nil, fmt.Errorf("area-only fallback query: %w", err)
		}
	}

	if len(programs) == 0 {
		programs, err = s.programRepo.ListLimit(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("default fallback query: %w", err)
		}
	}

	return s.resolve(ctx, programs)
}

// resolve attaches university names via one batched lookup.
func (s *recommendationService) resolve(ctx context.Context, programs []model.Program) ([]Recommendation, error) {
	idSet := make(map[uint]struct{}, len(programs))
	ids := make([]uint, 0, len(programs))
	for _, p := range programs {
		if p.UniversityID == 0 {
			continue
		}
		if _, seen := idSet[p.UniversityID]; !seen {
			idSet[p.UniversityID] = struct{}{}
			ids = append(ids, p.UniversityID)
		}
	}

	universities, err := s.programRepo.UniversitiesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("batch university lookup: %w", err)
	}

	results := make([]Recommendation, 0, len(programs))
	for _, p := range programs {
		uniName := "Unknown"
		if u, ok := universities[p.UniversityID]; ok {
			uniName = u.Name
		}
		results = append(results, Recommendation{
			ProgramID:      p.ID,
			ProgramName:    p.Name,
			DegreeLevel:    p.DegreeLevel,
			Mode:           p.Mode,
			Duration:       p.Duration,
			Fee:            p.Fee,
			AreaOfStudy:    p.AreaOfStudy,
			Requirements:   p.Requirements,
			UniversityID:   p.UniversityID,
			UniversityName: uniName,
		})
	}
	return results, nil
}
