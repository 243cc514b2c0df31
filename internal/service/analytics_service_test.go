package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eduhub/internal/model"
	"eduhub/internal/repository"
)

func TestAnalyticsService_Overview(t *testing.T) {
	mockAnalyticsRepo := new(MockAnalyticsRepository)
	mockProgramRepo := new(MockProgramRepository)

	mockAnalyticsRepo.On("CountUsersByRole", mock.Anything, model.RoleLearner).Return(int64(120), nil)
	mockAnalyticsRepo.On("CountUsersByRole", mock.Anything, model.RoleConsultant).Return(int64(8), nil)
	mockAnalyticsRepo.On("CountBookings", mock.Anything).Return(int64(60), nil)
	mockProgramRepo.On("Count", mock.Anything).Return(int64(40), nil)
	mockAnalyticsRepo.On("CountBookingsByStatus", mock.Anything, model.BookingStatusConfirmed).Return(int64(25), nil)
	mockAnalyticsRepo.On("CountBookingsByStatus", mock.Anything, model.BookingStatusPending).Return(int64(20), nil)
	mockAnalyticsRepo.On("CountBookingsByStatus", mock.Anything, model.BookingStatusCancelled).Return(int64(15), nil)
	mockAnalyticsRepo.On("CountBookingsSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(9), nil)
	mockAnalyticsRepo.On("CountUsersByRoleSince", mock.Anything, model.RoleLearner, mock.AnythingOfType("time.Time")).Return(int64(4), nil)

	service := NewAnalyticsService(mockAnalyticsRepo, mockProgramRepo, new(MockSlotRepository), new(MockUserRepository))
	overview, err := service.Overview(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(120), overview.TotalUsers)
	assert.Equal(t, int64(8), overview.TotalConsultants)
	assert.Equal(t, int64(60), overview.TotalBookings)
	assert.Equal(t, int64(40), overview.TotalPrograms)
	assert.Equal(t, int64(25), overview.ConfirmedBookings)
	// revenue is the flat fee times confirmed bookings
	assert.True(t, ConsultationFee.Mul(decimal.NewFromInt(25)).Equal(overview.TotalRevenue))
	assert.Equal(t, int64(9), overview.RecentBookings)
	assert.Equal(t, int64(4), overview.RecentUsers)
}

func TestAnalyticsService_Overview_PropagatesErrors(t *testing.T) {
	mockAnalyticsRepo := new(MockAnalyticsRepository)
	mockAnalyticsRepo.On("CountUsersByRole", mock.Anything, model.RoleLearner).Return(int64(0), assert.AnError)

	service := NewAnalyticsService(mockAnalyticsRepo, new(MockProgramRepository), new(MockSlotRepository), new(MockUserRepository))
	overview, err := service.Overview(context.Background())

	assert.Error(t, err)
	assert.Nil(t, overview)
}

func TestAnalyticsService_RevenueTrend(t *testing.T) {
	mockAnalyticsRepo := new(MockAnalyticsRepository)
	mockAnalyticsRepo.On("MonthlyConfirmedBookings", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]repository.MonthCount{
			{Month: "2026-07", Count: 3},
			{Month: "2026-08", Count: 5},
		}, nil)

	service := NewAnalyticsService(mockAnalyticsRepo, new(MockProgramRepository), new(MockSlotRepository), new(MockUserRepository))
	trend, err := service.RevenueTrend(context.Background())

	assert.NoError(t, err)
	assert.Len(t, trend, 2)
	assert.Equal(t, "2026-08", trend[1].Month)
	assert.True(t, ConsultationFee.Mul(decimal.NewFromInt(5)).Equal(trend[1].Revenue))
}

func TestAnalyticsService_ConsultantAnalytics(t *testing.T) {
	mockAnalyticsRepo := new(MockAnalyticsRepository)
	mockUserRepo := new(MockUserRepository)
	mockSlotRepo := new(MockSlotRepository)

	mockAnalyticsRepo.On("TopConsultants", mock.Anything).Return([]repository.ConsultantAgg{
		{ConsultantID: 3, ConsultantName: "Dr. Advisor", TotalBookings: 12, ConfirmedBookings: 10},
	}, nil)
	mockUserRepo.On("ListConsultants", mock.Anything).Return([]repository.ConsultantRow{
		{ID: 3, Name: "Dr. Advisor"},
		{ID: 4, Name: "Dr. Idle"},
	}, nil)
	mockSlotRepo.On("CountByConsultant", mock.Anything, uint(3)).Return(int64(30), int64(12), nil)
	mockSlotRepo.On("CountByConsultant", mock.Anything, uint(4)).Return(int64(0), int64(0), nil)

	service := NewAnalyticsService(mockAnalyticsRepo, new(MockProgramRepository), mockSlotRepo, mockUserRepo)
	analytics, err := service.ConsultantAnalytics(context.Background())

	assert.NoError(t, err)
	assert.Len(t, analytics.TopConsultants, 1)
	assert.True(t, ConsultationFee.Mul(decimal.NewFromInt(10)).Equal(analytics.TopConsultants[0].RevenueGenerated))
	assert.Len(t, analytics.Utilization, 2)
	assert.Equal(t, 40.0, analytics.Utilization[0].UtilizationRate)
	// no generated slots means zero utilization, not NaN
	assert.Equal(t, 0.0, analytics.Utilization[1].UtilizationRate)
}

func TestPopularInterestAreas(t *testing.T) {
	areas := PopularInterestAreas([]string{
		"AI, Data Science",
		"AI",
		"Business, AI",
		" Data Science ",
		"",
	}, 2)

	assert.Equal(t, []AreaCount{
		{Area: "AI", Count: 3},
		{Area: "Data Science", Count: 2},
	}, areas)
}

func TestPopularInterestAreas_TieBreaksByName(t *testing.T) {
	areas := PopularInterestAreas([]string{"Zoology", "Art"}, 10)

	assert.Equal(t, []AreaCount{
		{Area: "Art", Count: 1},
		{Area: "Zoology", Count: 1},
	}, areas)
}

func TestFormatDailyTrends(t *testing.T) {
	trends := formatDailyTrends([]repository.DateCount{
		{Date: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), Count: 4},
	})

	assert.Equal(t, []DailyTrend{{Date: "2026-08-01", Count: 4}}, trends)
}
