package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	reservationRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
	"github.com/avdeevlv/GMS-ReservationService/pkg/ptr"
)

// Mock dependencies

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetUpcomingByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByGarageWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetPendingQuotes(ctx context.Context, garageID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, garageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, args ...interface{})  {}
func (nopLogger) Warn(format string, args ...interface{})  {}
func (nopLogger) Error(format string, args ...interface{}) {}

var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MockReservationRepository) *Service {
	return NewService(repo, fixedTime{now: testNow}, nopLogger{})
}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        7,
		UserID:    42,
		GarageID:  10,
		ServiceID: 20,
		TimeSlot:  time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		Status:    domain.StatusConfirmed,
	}
}

func TestGetByID_Owner(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, int64(7)).Return(sampleReservation(), nil)

	resp, err := svc.GetByID(context.Background(), 7, 42, domain.RoleCustomer)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2025-10-15T10:00:00Z", resp.TimeSlot)
}

func TestGetByID_ForeignCustomerDenied(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, int64(7)).Return(sampleReservation(), nil)

	_, err := svc.GetByID(context.Background(), 7, 999, domain.RoleCustomer)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_GarageRolesSeeAny(t *testing.T) {
	for _, role := range []string{domain.RoleGarageOwner, domain.RoleAdmin} {
		repo := new(MockReservationRepository)
		svc := newTestService(repo)

		repo.On("GetByID", mock.Anything, int64(7)).Return(sampleReservation(), nil)

		resp, err := svc.GetByID(context.Background(), 7, 999, role)

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := svc.GetByID(context.Background(), 7, 42, domain.RoleCustomer)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations_StatusFilter(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	confirmed := domain.StatusConfirmed
	repo.On("GetByUserID", mock.Anything, int64(42), &confirmed).
		Return([]*domain.Reservation{sampleReservation()}, nil)

	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: 42,
		Status: ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
	repo.AssertExpectations(t)
}

func TestGetUserReservations_InvalidStatus(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: 42,
		Status: ptr.Ptr("parked"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByUserID")
}

func TestGetUpcoming_PassesCurrentTime(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	repo.On("GetUpcomingByUser", mock.Anything, int64(42), testNow).
		Return([]*domain.Reservation{sampleReservation()}, nil)

	resp, err := svc.GetUpcoming(context.Background(), 42)

	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
	repo.AssertExpectations(t)
}

func TestGetGarageReservations_BuildsFilter(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	pending := domain.StatusPending

	repo.On("GetByGarageWithFilter", mock.Anything, domain.ReservationFilter{
		GarageID:  10,
		UserID:    ptr.Ptr(int64(42)),
		StartDate: &start,
		EndDate:   &end,
		Status:    &pending,
	}).Return([]*domain.Reservation{}, nil)

	resp, err := svc.GetGarageReservations(context.Background(), &models.GetGarageReservationsRequest{
		GarageID:  10,
		UserID:    ptr.Ptr(int64(42)),
		StartDate: &start,
		EndDate:   &end,
		Status:    ptr.Ptr("pending"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Reservations)
	repo.AssertExpectations(t)
}

func TestGetPendingQuotes(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo)

	waiting := sampleReservation()
	waiting.Status = domain.StatusPendingQuote

	repo.On("GetPendingQuotes", mock.Anything, int64(10)).
		Return([]*domain.Reservation{waiting}, nil)

	resp, err := svc.GetPendingQuotes(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, string(domain.StatusPendingQuote), resp.Reservations[0].Status)
}
