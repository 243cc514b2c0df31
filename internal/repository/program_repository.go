package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"eduhub/internal/model"
)

// ProgramRepository defines program and university read/import operations.
type ProgramRepository interface {
	FindByFilters(ctx context.Context, areas []string, degreeLevel, mode string, limit int) ([]model.Program, error)
	ListLimit(ctx context.Context, limit int) ([]model.Program, error)
	ListAll(ctx context.Context) ([]model.Program, error)
	Count(ctx context.Context) (int64, error)
	UniversitiesByIDs(ctx context.Context, ids []uint) (map[uint]model.University, error)
	UpsertUniversity(ctx context.Context, university *model.University) error
	UpsertProgram(ctx context.Context, program *model.Program) error
}

type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new program repository.
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

// FindByFilters finds programs matching any of the areas (substring,
// case-insensitive) AND the degree level AND the mode. Empty filter
// values are skipped. Rows come back in natural store order.
func (r *programRepository) FindByFilters(ctx context.Context, areas []string, degreeLevel, mode string, limit int) ([]model.Program, error) {
	q := r.db.WithContext(ctx).Model(&model.Program{})

	if len(areas) > 0 {
		conds := make([]string, 0, len(areas))
		args := make([]interface{}, 0, len(areas))
		for _, area := range areas {
			conds = append(conds, "LOWER(area_of_study) LIKE ?")
			args = append(args, "%"+strings.ToLower(area)+"%")
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	if degreeLevel != "" {
		q = q.Where("LOWER(degree_level) = ?", strings.ToLower(degreeLevel))
	}
	if mode != "" {
		q = q.Where("LOWER(mode) = ?", strings.ToLower(mode))
	}

	var programs []model.Program
	if err := q.Limit(limit).Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

// ListLimit returns the first limit programs in natural store order.
func (r *programRepository) ListLimit(ctx context.Context, limit int) ([]model.Program, error) {
	var programs []model.Program
	if err := r.db.WithContext(ctx).Limit(limit).Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

// ListAll returns every program.
func (r *programRepository) ListAll(ctx context.Context) ([]model.Program, error) {
	var programs []model.Program
	if err := r.db.WithContext(ctx).Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

// Count returns the total number of programs.
func (r *programRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Program{}).Count(&count).Error
	return count, err
}

// UniversitiesByIDs batch-loads universities keyed by id.
func (r *programRepository) UniversitiesByIDs(ctx context.Context, ids []uint) (map[uint]model.University, error) {
	result := make(map[uint]model.University, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var universities []model.University
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&universities).Error; err != nil {
		return nil, err
	}
	for _, u := range universities {
		result[u.ID] = u
	}
	return result, nil
}

// UpsertUniversity creates or replaces a university row by id.
func (r *programRepository) UpsertUniversity(ctx context.Context, university *model.University) error {
	return r.db.WithContext(ctx).Save(university).Error
}

// UpsertProgram creates or replaces a program row by id.
func (r *programRepository) UpsertProgram(ctx context.Context, program *model.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}
