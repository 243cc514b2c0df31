package repository

import (
	"context"

	"gorm.io/gorm"

	"eduhub/internal/model"
)

// LearnerRow is a learner identity joined with its profile.
type LearnerRow struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	AreasOfInterest string `json:"areas_of_interest"`
	DegreeLevel     string `json:"degree_level"`
	Mode            string `json:"mode"`
}

// ConsultantRow is a consultant identity joined with its profile.
type ConsultantRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Shift    string `json:"shift"`
	Presence string `json:"presence"`
}

// UserRepository defines identity persistence operations.
type UserRepository interface {
	CreateAdmin(ctx context.Context, user *model.User) error
	CreateLearner(ctx context.Context, user *model.User, profile *model.LearnerProfile) error
	CreateConsultant(ctx context.Context, user *model.User, profile *model.ConsultantProfile) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	IsAdmin(ctx context.Context, id uint) (bool, error)
	FindLearner(ctx context.Context, id uint) (*model.User, *model.LearnerProfile, error)
	FindConsultant(ctx context.Context, id uint) (*model.User, *model.ConsultantProfile, error)
	ListLearners(ctx context.Context) ([]LearnerRow, error)
	ListConsultants(ctx context.Context) ([]ConsultantRow, error)
	UpdateConsultantEmployment(ctx context.Context, id uint, presence, shift string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateAdmin creates an admin identity.
func (r *userRepository) CreateAdmin(ctx context.Context, user *model.User) error {
	user.Role = model.RoleAdmin
	return r.db.WithContext(ctx).Create(user).Error
}

// CreateLearner creates a learner identity and its profile in one transaction.
func (r *userRepository) CreateLearner(ctx context.Context, user *model.User, profile *model.LearnerProfile) error {
	user.Role = model.RoleLearner
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

// CreateConsultant creates a consultant identity and its profile in one transaction.
func (r *userRepository) CreateConsultant(ctx context.Context, user *model.User, profile *model.ConsultantProfile) error {
	user.Role = model.RoleConsultant
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

// FindByEmail finds a user of any role by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user of any role by id.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsAdmin re-checks the users table for an admin identity.
func (r *userRepository) IsAdmin(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND role = ?", id, model.RoleAdmin).
		Count(&count).Error
	return count > 0, err
}

// FindLearner returns a learner identity with its profile.
func (r *userRepository) FindLearner(ctx context.Context, id uint) (*model.User, *model.LearnerProfile, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ? AND role = ?", id, model.RoleLearner).First(&user).Error; err != nil {
		return nil, nil, err
	}
	var profile model.LearnerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&profile).Error; err != nil {
		return nil, nil, err
	}
	return &user, &profile, nil
}

// FindConsultant returns a consultant identity with its profile.
func (r *userRepository) FindConsultant(ctx context.Context, id uint) (*model.User, *model.ConsultantProfile, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ? AND role = ?", id, model.RoleConsultant).First(&user).Error; err != nil {
		return nil, nil, err
	}
	var profile model.ConsultantProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&profile).Error; err != nil {
		return nil, nil, err
	}
	return &user, &profile, nil
}

// ListLearners lists all learners joined with their profiles.
func (r *userRepository) ListLearners(ctx context.Context) ([]LearnerRow, error) {
	var rows []LearnerRow
	err := r.db.WithContext(ctx).Table("users").
		Select("users.id, users.name, users.email, p.phone, p.address, p.areas_of_interest, p.degree_level, p.mode").
		Joins("JOIN learner_profiles p ON p.user_id = users.id").
		Where("users.role = ?", model.RoleLearner).
		Scan(&rows).Error
	return rows, err
}

// ListConsultants lists all consultants joined with their profiles.
func (r *userRepository) ListConsultants(ctx context.Context) ([]ConsultantRow, error) {
	var rows []ConsultantRow
	err := r.db.WithContext(ctx).Table("users").
		Select("users.id, users.name, users.email, p.phone, p.address, p.shift, p.presence").
		Joins("JOIN consultant_profiles p ON p.user_id = users.id").
		Where("users.role = ?", model.RoleConsultant).
		Scan(&rows).Error
	return rows, err
}

// UpdateConsultantEmployment updates presence and shift for a consultant.
// Existence is checked up front: MySQL's RowsAffected counts rows changed,
// so re-sending the current values would otherwise look like a miss.
func (r *userRepository) UpdateConsultantEmployment(ctx context.Context, id uint, presence, shift string) error {
	var profile model.ConsultantProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&profile).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if presence != "" {
		updates["presence"] = presence
	}
	if shift != "" {
		updates["shift"] = shift
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.ConsultantProfile{}).
		Where("user_id = ?", id).
		Updates(updates).Error
}
