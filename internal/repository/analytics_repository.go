package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"eduhub/internal/model"
)

// DateCount is a per-day aggregate row.
type DateCount struct {
	Date  time.Time `json:"-"`
	Count int64     `json:"count"`
}

// LabelCount is a generic grouped count.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// MonthCount is a per-month aggregate row.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// ConsultantAgg is a per-consultant booking aggregate.
type ConsultantAgg struct {
	ConsultantID      uint   `json:"consultant_id"`
	ConsultantName    string `json:"consultant_name"`
	ConsultantEmail   string `json:"consultant_email"`
	TotalBookings     int64  `json:"total_bookings"`
	ConfirmedBookings int64  `json:"confirmed_bookings"`
}

// AnalyticsRepository defines the admin read-side aggregate queries.
type AnalyticsRepository interface {
	CountUsersByRole(ctx context.Context, role model.Role) (int64, error)
	CountUsersByRoleSince(ctx context.Context, role model.Role, since time.Time) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
	CountBookingsByStatus(ctx context.Context, status model.BookingStatus) (int64, error)
	CountBookingsSince(ctx context.Context, since time.Time) (int64, error)
	DailyBookingCounts(ctx context.Context, since time.Time) ([]DateCount, error)
	StatusDistribution(ctx context.Context) ([]LabelCount, error)
	PopularStartTimes(ctx context.Context, limit int) ([]LabelCount, error)
	DailyRegistrations(ctx context.Context, since time.Time) ([]DateCount, error)
	DegreeDistribution(ctx context.Context) ([]LabelCount, error)
	ModeDistribution(ctx context.Context) ([]LabelCount, error)
	InterestAreaStrings(ctx context.Context) ([]string, error)
	TopConsultants(ctx context.Context) ([]ConsultantAgg, error)
	MonthlyConfirmedBookings(ctx context.Context, since time.Time) ([]MonthCount, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountUsersByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountUsersByRoleSince(ctx context.Context, role model.Role, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND created_at >= ?", role, since).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountBookings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountBookingsByStatus(ctx context.Context, status model.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountBookingsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// DailyBookingCounts groups bookings by creation date since the cutoff.
func (r *analyticsRepository) DailyBookingCounts(ctx context.Context, since time.Time) ([]DateCount, error) {
	var rows []DateCount
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Select("DATE(created_at) AS date, COUNT(id) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Scan(&rows).Error
	return rows, err
}

// StatusDistribution groups bookings by status.
func (r *analyticsRepository) StatusDistribution(ctx context.Context) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Select("status AS label, COUNT(id) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// PopularStartTimes returns the most-booked slot start times.
func (r *analyticsRepository) PopularStartTimes(ctx context.Context, limit int) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).Table("time_slots").
		Select("time_slots.start_time AS label, COUNT(bookings.id) AS count").
		Joins("JOIN bookings ON bookings.time_slot_id = time_slots.id").
		Group("time_slots.start_time").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// DailyRegistrations groups learner registrations by date since the cutoff.
func (r *analyticsRepository) DailyRegistrations(ctx context.Context, since time.Time) ([]DateCount, error) {
	var rows []DateCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("DATE(created_at) AS date, COUNT(id) AS count").
		Where("role = ? AND created_at >= ?", model.RoleLearner, since).
		Group("DATE(created_at)").
		Scan(&rows).Error
	return rows, err
}

// DegreeDistribution groups learners by declared degree level.
func (r *analyticsRepository) DegreeDistribution(ctx context.Context) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).Model(&model.LearnerProfile{}).
		Select("degree_level AS label, COUNT(user_id) AS count").
		Where("degree_level <> ''").
		Group("degree_level").
		Scan(&rows).Error
	return rows, err
}

// ModeDistribution groups learners by declared study mode.
func (r *analyticsRepository) ModeDistribution(ctx context.Context) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).Model(&model.LearnerProfile{}).
		Select("mode AS label, COUNT(user_id) AS count").
		Where("mode <> ''").
		Group("mode").
		Scan(&rows).Error
	return rows, err
}

// InterestAreaStrings returns the raw comma-separated interest strings;
// parsing happens in the service.
func (r *analyticsRepository) InterestAreaStrings(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&model.LearnerProfile{}).
		Where("areas_of_interest <> ''").
		Pluck("areas_of_interest", &values).Error
	return values, err
}

// TopConsultants ranks consultants by booking volume via an outer join,
// so consultants without bookings still appear.
func (r *analyticsRepository) TopConsultants(ctx context.Context) ([]ConsultantAgg, error) {
	var rows []ConsultantAgg
	err := r.db.WithContext(ctx).Table("users").
		Select("users.id AS consultant_id, users.name AS consultant_name, users.email AS consultant_email, "+
			"COUNT(bookings.id) AS total_bookings, "+
			"SUM(CASE WHEN bookings.status = ? THEN 1 ELSE 0 END) AS confirmed_bookings", model.BookingStatusConfirmed).
		Joins("LEFT JOIN bookings ON bookings.consultant_id = users.id").
		Where("users.role = ?", model.RoleConsultant).
		Group("users.id, users.name, users.email").
		Order("total_bookings DESC").
		Scan(&rows).Error
	return rows, err
}

// MonthlyConfirmedBookings groups confirmed bookings by month since the cutoff.
func (r *analyticsRepository) MonthlyConfirmedBookings(ctx context.Context, since time.Time) ([]MonthCount, error) {
	var rows []MonthCount
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(id) AS count").
		Where("status = ? AND created_at >= ?", model.BookingStatusConfirmed, since).
		Group("DATE_FORMAT(created_at, '%Y-%m')").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}
