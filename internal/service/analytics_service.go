package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"eduhub/internal/model"
	"eduhub/internal/repository"
)

// Overview is the admin dashboard headline block.
type Overview struct {
	TotalUsers        int64           `json:"total_users"`
	TotalConsultants  int64           `json:"total_consultants"`
	TotalBookings     int64           `json:"total_bookings"`
	TotalPrograms     int64           `json:"total_programs"`
	ConfirmedBookings int64           `json:"confirmed_bookings"`
	PendingBookings   int64           `json:"pending_bookings"`
	CancelledBookings int64           `json:"cancelled_bookings"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	RecentBookings    int64           `json:"recent_bookings"`
	RecentUsers       int64           `json:"recent_users"`
}

// DailyTrend is a per-day count with a formatted date.
type DailyTrend struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// MonthlyRevenue is confirmed-booking revenue for one month.
type MonthlyRevenue struct {
	Month             string          `json:"month"`
	ConfirmedBookings int64           `json:"confirmed_bookings"`
	Revenue           decimal.Decimal `json:"revenue"`
}

// TopConsultant is a ranked consultant with derived revenue.
type TopConsultant struct {
	ConsultantID      uint            `json:"consultant_id"`
	ConsultantName    string          `json:"consultant_name"`
	ConsultantEmail   string          `json:"consultant_email"`
	TotalBookings     int64           `json:"total_bookings"`
	ConfirmedBookings int64           `json:"confirmed_bookings"`
	RevenueGenerated  decimal.Decimal `json:"revenue_generated"`
}

// ConsultantUtilization is booked-versus-generated slot usage.
type ConsultantUtilization struct {
	ConsultantID    uint    `json:"consultant_id"`
	ConsultantName  string  `json:"consultant_name"`
	TotalSlots      int64   `json:"total_slots"`
	BookedSlots     int64   `json:"booked_slots"`
	UtilizationRate float64 `json:"utilization_rate"`
}

// ConsultantAnalytics groups the consultant-side dashboards.
type ConsultantAnalytics struct {
	TopConsultants []TopConsultant         `json:"top_consultants"`
	Utilization    []ConsultantUtilization `json:"utilization"`
}

// BookingAnalytics groups the booking-side dashboards.
type BookingAnalytics struct {
	DailyTrends        []DailyTrend             `json:"daily_trends"`
	StatusDistribution []repository.LabelCount  `json:"status_distribution"`
	PopularTimeSlots   []PopularTimeSlot        `json:"popular_time_slots"`
}

// PopularTimeSlot is a start time ranked by booking volume.
type PopularTimeSlot struct {
	Time         string `json:"time"`
	BookingCount int64  `json:"booking_count"`
}

// AreaCount is an interest area with its learner count.
type AreaCount struct {
	Area  string `json:"area"`
	Count int64  `json:"count"`
}

// UserAnalytics groups the learner-side dashboards.
type UserAnalytics struct {
	RegistrationTrends []DailyTrend            `json:"registration_trends"`
	DegreeDistribution []repository.LabelCount `json:"degree_distribution"`
	ModeDistribution   []repository.LabelCount `json:"mode_distribution"`
	PopularAreas       []AreaCount             `json:"popular_areas"`
}

// AnalyticsService assembles the admin read-side dashboards. Failures
// propagate as errors rather than degrading to mock payloads.
type AnalyticsService interface {
	Overview(ctx context.Context) (*Overview, error)
	RevenueTrend(ctx context.Context) ([]MonthlyRevenue, error)
	ConsultantAnalytics(ctx context.Context) (*ConsultantAnalytics, error)
	BookingAnalytics(ctx context.Context) (*BookingAnalytics, error)
	UserAnalytics(ctx context.Context) (*UserAnalytics, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	programRepo   repository.ProgramRepository
	slotRepo      repository.SlotRepository
	userRepo      repository.UserRepository
	now           func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	programRepo repository.ProgramRepository,
	slotRepo repository.SlotRepository,
	userRepo repository.UserRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		programRepo:   programRepo,
		slotRepo:      slotRepo,
		userRepo:      userRepo,
		now:           time.Now,
	}
}

// Overview returns totals, status breakdowns, derived revenue and
// last-7-day activity.
func (s *analyticsService) Overview(ctx context.Context) (*Overview, error) {
	totalUsers, err := s.analyticsRepo.CountUsersByRole(ctx, model.RoleLearner)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalConsultants, err := s.analyticsRepo.CountUsersByRole(ctx, model.RoleConsultant)
	if err != nil {
		return nil, fmt.Errorf("count consultants: %w", err)
	}
	totalBookings, err := s.analyticsRepo.CountBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	totalPrograms, err := s.programRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count programs: %w", err)
	}
	confirmed, err := s.analyticsRepo.CountBookingsByStatus(ctx, model.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed: %w", err)
	}
	pending, err := s.analyticsRepo.CountBookingsByStatus(ctx, model.BookingStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	cancelled, err := s.analyticsRepo.CountBookingsByStatus(ctx, model.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("count cancelled: %w", err)
	}

	weekAgo := s.now().AddDate(0, 0, -7)
	recentBookings, err := s.analyticsRepo.CountBookingsSince(ctx, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("count recent bookings: %w", err)
	}
	recentUsers, err := s.analyticsRepo.CountUsersByRoleSince(ctx, model.RoleLearner, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("count recent users: %w", err)
	}

	return &Overview{
		TotalUsers:        totalUsers,
		TotalConsultants:  totalConsultants,
		TotalBookings:     totalBookings,
		TotalPrograms:     totalPrograms,
		ConfirmedBookings: confirmed,
		PendingBookings:   pending,
		CancelledBookings: cancelled,
		TotalRevenue:      ConsultationFee.Mul(decimal.NewFromInt(confirmed)),
		RecentBookings:    recentBookings,
		RecentUsers:       recentUsers,
	}, nil
}

// RevenueTrend returns the monthly confirmed-booking revenue for the
// last 12 months.
func (s *analyticsService) RevenueTrend(ctx context.Context) ([]MonthlyRevenue, error) {
	yearAgo := s.now().AddDate(-1, 0, 0)
	months, err := s.analyticsRepo.MonthlyConfirmedBookings(ctx, yearAgo)
	if err != nil {
		return nil, fmt.Errorf("monthly confirmed bookings: %w", err)
	}

	trend := make([]MonthlyRevenue, 0, len(months))
	for _, m := range months {
		trend = append(trend, MonthlyRevenue{
			Month:             m.Month,
			ConfirmedBookings: m.Count,
			Revenue:           ConsultationFee.Mul(decimal.NewFromInt(m.Count)),
		})
	}
	return trend, nil
}

// ConsultantAnalytics returns the top-consultant ranking and slot
// utilization dashboards.
func (s *analyticsService) ConsultantAnalytics(ctx context.Context) (*ConsultantAnalytics, error) {
	aggs, err := s.analyticsRepo.TopConsultants(ctx)
	if err != nil {
		return nil, fmt.Errorf("top consultants: %w", err)
	}

	top := make([]TopConsultant, 0, len(aggs))
	for _, agg := range aggs {
		top = append(top, TopConsultant{
			ConsultantID:      agg.ConsultantID,
			ConsultantName:    agg.ConsultantName,
			ConsultantEmail:   agg.ConsultantEmail,
			TotalBookings:     agg.TotalBookings,
			ConfirmedBookings: agg.ConfirmedBookings,
			RevenueGenerated:  ConsultationFee.Mul(decimal.NewFromInt(agg.ConfirmedBookings)),
		})
	}

	consultants, err := s.userRepo.ListConsultants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}
	utilization := make([]ConsultantUtilization, 0, len(consultants))
	for _, c := range consultants {
		total, booked, err := s.slotRepo.CountByConsultant(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("count slots for consultant %d: %w", c.ID, err)
		}
		rate := 0.0
		if total > 0 {
			rate = math.Round(float64(booked)/float64(total)*100*100) / 100
		}
		utilization = append(utilization, ConsultantUtilization{
			ConsultantID:    c.ID,
			ConsultantName:  c.Name,
			TotalSlots:      total,
			BookedSlots:     booked,
			UtilizationRate: rate,
		})
	}

	return &ConsultantAnalytics{TopConsultants: top, Utilization: utilization}, nil
}

// BookingAnalytics returns the 30-day daily trend, status distribution
// and the ten most-booked start times.
func (s *analyticsService) BookingAnalytics(ctx context.Context) (*BookingAnalytics, error) {
	thirtyDaysAgo := s.now().AddDate(0, 0, -30)

	daily, err := s.analyticsRepo.DailyBookingCounts(ctx, thirtyDaysAgo)
	if err != nil {
		return nil, fmt.Errorf("daily booking counts: %w", err)
	}
	statuses, err := s.analyticsRepo.StatusDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	popular, err := s.analyticsRepo.PopularStartTimes(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("popular start times: %w", err)
	}

	popularSlots := make([]PopularTimeSlot, 0, len(popular))
	for _, p := range popular {
		popularSlots = append(popularSlots, PopularTimeSlot{Time: p.Label, BookingCount: p.Count})
	}

	return &BookingAnalytics{
		DailyTrends:        formatDailyTrends(daily),
		StatusDistribution: statuses,
		PopularTimeSlots:   popularSlots,
	}, nil
}

// UserAnalytics returns registration trends, learner demographics and
// the ten most-declared interest areas.
func (s *analyticsService) UserAnalytics(ctx context.Context) (*UserAnalytics, error) {
	thirtyDaysAgo := s.now().AddDate(0, 0, -30)

	registrations, err := s.analyticsRepo.DailyRegistrations(ctx, thirtyDaysAgo)
	if err != nil {
		return nil, fmt.Errorf("daily registrations: %w", err)
	}
	degrees, err := s.analyticsRepo.DegreeDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("degree distribution: %w", err)
	}
	modes, err := s.analyticsRepo.ModeDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("mode distribution: %w", err)
	}
	areaStrings, err := s.analyticsRepo.InterestAreaStrings(ctx)
	if err != nil {
		return nil, fmt.Errorf("interest areas: %w", err)
	}

	return &UserAnalytics{
		RegistrationTrends: formatDailyTrends(registrations),
		DegreeDistribution: degrees,
		ModeDistribution:   modes,
		PopularAreas:       PopularInterestAreas(areaStrings, 10),
	}, nil
}

// PopularInterestAreas tallies comma-separated interest strings and
// returns the top n areas by learner count.
func PopularInterestAreas(areaStrings []string, n int) []AreaCount {
	counts := make(map[string]int64)
	for _, raw := range areaStrings {
		for _, area := range strings.Split(raw, ",") {
			area = strings.TrimSpace(area)
			if area != "" {
				counts[area]++
			}
		}
	}

	areas := make([]AreaCount, 0, len(counts))
	for area, count := range counts {
		areas = append(areas, AreaCount{Area: area, Count: count})
	}
	sort.Slice(areas, func(i, j int) bool {
		if areas[i].Count != areas[j].Count {
			return areas[i].Count > areas[j].Count
		}
		return areas[i].Area < areas[j].Area
	})
	if len(areas) > n {
		areas = areas[:n]
	}
	return areas
}

func formatDailyTrends(rows []repository.DateCount) []DailyTrend {
	trends := make([]DailyTrend, 0, len(rows))
	for _, row := range rows {
		trends = append(trends, DailyTrend{
			Date:  row.Date.Format(model.DateLayout),
			Count: row.Count,
		})
	}
	return trends
}
