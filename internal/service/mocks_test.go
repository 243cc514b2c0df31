package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"eduhub/internal/model"
	"eduhub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateAdmin(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CreateLearner(ctx context.Context, user *model.User, profile *model.LearnerProfile) error {
	args := m.Called(ctx, user, profile)
	return args.Error(0)
}

func (m *MockUserRepository) CreateConsultant(ctx context.Context, user *model.User, profile *model.ConsultantProfile) error {
	args := m.Called(ctx, user, profile)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) IsAdmin(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindLearner(ctx context.Context, id uint) (*model.User, *model.LearnerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*model.LearnerProfile), args.Error(2)
}

func (m *MockUserRepository) FindConsultant(ctx context.Context, id uint) (*model.User, *model.ConsultantProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*model.ConsultantProfile), args.Error(2)
}

func (m *MockUserRepository) ListLearners(ctx context.Context) ([]repository.LearnerRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LearnerRow), args.Error(1)
}

func (m *MockUserRepository) ListConsultants(ctx context.Context) ([]repository.ConsultantRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ConsultantRow), args.Error(1)
}

func (m *MockUserRepository) UpdateConsultantEmployment(ctx context.Context, id uint, presence, shift string) error {
	args := m.Called(ctx, id, presence, shift)
	return args.Error(0)
}

// MockSlotRepository is a mock implementation of SlotRepository.
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Exists(ctx context.Context, consultantID uint, date time.Time, startTime, endTime string) (bool, error) {
	args := m.Called(ctx, consultantID, date, startTime, endTime)
	return args.Bool(0), args.Error(1)
}

func (m *MockSlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) FindByID(ctx context.Context, id uint) (*model.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeSlot), args.Error(1)
}

func (m *MockSlotRepository) ListAvailable(ctx context.Context, consultantID uint, date *time.Time) ([]model.TimeSlot, error) {
	args := m.Called(ctx, consultantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimeSlot), args.Error(1)
}

func (m *MockSlotRepository) CountByConsultant(ctx context.Context, consultantID uint) (int64, int64, error) {
	args := m.Called(ctx, consultantID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockBookingRepository is a mock implementation of BookingRepository.
// WithTransaction runs the callback against the mock itself so the
// transactional body is exercised.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindSlotForUpdate(ctx context.Context, slotID uint) (*model.TimeSlot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeSlot), args.Error(1)
}

func (m *MockBookingRepository) UpdateSlotAvailability(ctx context.Context, slotID uint, available bool) error {
	args := m.Called(ctx, slotID, available)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByConsultant(ctx context.Context, consultantID uint) ([]repository.BookingRow, error) {
	args := m.Called(ctx, consultantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingRow), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID uint) ([]repository.BookingRow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingRow), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]repository.BookingRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingRow), args.Error(1)
}

func (m *MockBookingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.BookingRepository) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// MockProgramRepository is a mock implementation of ProgramRepository.
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) FindByFilters(ctx context.Context, areas []string, degreeLevel, mode string, limit int) ([]model.Program, error) {
	args := m.Called(ctx, areas, degreeLevel, mode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Program), args.Error(1)
}

func (m *MockProgramRepository) ListLimit(ctx context.Context, limit int) ([]model.Program, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Program), args.Error(1)
}

func (m *MockProgramRepository) ListAll(ctx context.Context) ([]model.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Program), args.Error(1)
}

func (m *MockProgramRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgramRepository) UniversitiesByIDs(ctx context.Context, ids []uint) (map[uint]model.University, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]model.University), args.Error(1)
}

func (m *MockProgramRepository) UpsertUniversity(ctx context.Context, university *model.University) error {
	args := m.Called(ctx, university)
	return args.Error(0)
}

func (m *MockProgramRepository) UpsertProgram(ctx context.Context, program *model.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository.
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) CountUsersByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountUsersByRoleSince(ctx context.Context, role model.Role, since time.Time) (int64, error) {
	args := m.Called(ctx, role, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountBookings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountBookingsByStatus(ctx context.Context, status model.BookingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountBookingsSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) DailyBookingCounts(ctx context.Context, since time.Time) ([]repository.DateCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DateCount), args.Error(1)
}

func (m *MockAnalyticsRepository) StatusDistribution(ctx context.Context) ([]repository.LabelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}

func (m *MockAnalyticsRepository) PopularStartTimes(ctx context.Context, limit int) ([]repository.LabelCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}

func (m *MockAnalyticsRepository) DailyRegistrations(ctx context.Context, since time.Time) ([]repository.DateCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DateCount), args.Error(1)
}

func (m *MockAnalyticsRepository) DegreeDistribution(ctx context.Context) ([]repository.LabelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}

func (m *MockAnalyticsRepository) ModeDistribution(ctx context.Context) ([]repository.LabelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}

func (m *MockAnalyticsRepository) InterestAreaStrings(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAnalyticsRepository) TopConsultants(ctx context.Context) ([]repository.ConsultantAgg, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ConsultantAgg), args.Error(1)
}

func (m *MockAnalyticsRepository) MonthlyConfirmedBookings(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthCount), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Get(2).(model.Role), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockPaymentGateway is a mock implementation of PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Authorize(ctx context.Context, card CardDetails, amount decimal.Decimal) (string, error) {
	args := m.Called(ctx, card, amount)
	return args.String(0), args.Error(1)
}
