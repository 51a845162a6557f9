package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	reservationRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/reservation"
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

func (m *MockReservationRepository) Transition(ctx context.Context, id int64, from []domain.ReservationStatus, upd reservationRepo.TransitionUpdate) error {
	args := m.Called(ctx, id, from, upd)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	args := m.Called(ctx, eventName, payload)
	return args.Error(0)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MockReservationRepository, events *MockEventPublisher) *Service {
	return NewService(repo, events, fixedTime{now: testNow}, nopLogger{})
}

func reservationInStatus(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:        7,
		UserID:    42,
		GarageID:  10,
		ServiceID: 20,
		TimeSlot:  time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		Status:    status,
	}
}

func TestProvideQuote_Success(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	current := reservationInStatus(domain.StatusPendingQuote)
	updated := reservationInStatus(domain.StatusQuoteProvided)
	updated.Price = ptr.Ptr(120.0)

	notes := "замена тормозных колодок и дисков"

	repo.On("GetByID", mock.Anything, int64(7)).Return(current, nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusPendingQuote},
		reservationRepo.TransitionUpdate{
			Status:      domain.StatusQuoteProvided,
			Price:       ptr.Ptr(120.0),
			GarageNotes: &notes,
		}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil).Once()
	events.On("Publish", mock.Anything, domain.EventQuoteProvided, updated).Return(nil)

	result, err := svc.ProvideQuote(context.Background(), 7, 120.0, &notes)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteProvided, result.Status)
	assert.Equal(t, 120.0, *result.Price)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestProvideQuote_WrongStatus(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusConfirmed), nil)

	_, err := svc.ProvideQuote(context.Background(), 7, 120.0, nil)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	repo.AssertNotCalled(t, "Transition")
	events.AssertNotCalled(t, "Publish")
}

func TestProvideQuote_InvalidPrice(t *testing.T) {
	svc := newTestService(new(MockReservationRepository), new(MockEventPublisher))

	_, err := svc.ProvideQuote(context.Background(), 7, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ProvideQuote(context.Background(), 7, -10, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAcceptQuote_Success(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	current := reservationInStatus(domain.StatusQuoteProvided)
	current.Price = ptr.Ptr(120.0)
	updated := reservationInStatus(domain.StatusConfirmed)
	updated.Price = ptr.Ptr(120.0)
	updated.ConfirmedAt = ptr.Ptr(testNow)

	repo.On("GetByID", mock.Anything, int64(7)).Return(current, nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusQuoteProvided},
		reservationRepo.TransitionUpdate{
			Status:      domain.StatusConfirmed,
			ConfirmedAt: ptr.Ptr(testNow),
		}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil).Once()
	events.On("Publish", mock.Anything, domain.EventReservationConfirmed, updated).Return(nil)

	result, err := svc.AcceptQuote(context.Background(), 7, 42)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, result.Status)
	assert.Equal(t, testNow, *result.ConfirmedAt)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestAcceptQuote_WrongCustomer(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusQuoteProvided), nil)

	_, err := svc.AcceptQuote(context.Background(), 7, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "Transition")
	events.AssertNotCalled(t, "Publish")
}

func TestConfirm_Success(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	updated := reservationInStatus(domain.StatusConfirmed)
	updated.ConfirmedAt = ptr.Ptr(testNow)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusPending), nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusPending},
		reservationRepo.TransitionUpdate{
			Status:      domain.StatusConfirmed,
			ConfirmedAt: ptr.Ptr(testNow),
		}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil).Once()
	events.On("Publish", mock.Anything, domain.EventReservationConfirmed, updated).Return(nil)

	result, err := svc.Confirm(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, testNow, *result.ConfirmedAt)
	repo.AssertExpectations(t)
}

func TestStartService_NoEventPublished(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusConfirmed), nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusConfirmed},
		reservationRepo.TransitionUpdate{Status: domain.StatusInProgress}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusInProgress), nil).Once()

	result, err := svc.StartService(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, result.Status)
	// Начало работ - внутренняя отметка, событий не порождает
	events.AssertNotCalled(t, "Publish")
}

func TestComplete_FromInProgress(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	updated := reservationInStatus(domain.StatusCompleted)
	updated.CompletedAt = ptr.Ptr(testNow)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusInProgress), nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusInProgress},
		reservationRepo.TransitionUpdate{
			Status:      domain.StatusCompleted,
			CompletedAt: ptr.Ptr(testNow),
		}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil).Once()
	events.On("Publish", mock.Anything, domain.EventReservationCompleted, updated).Return(nil)

	result, err := svc.Complete(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, testNow, *result.CompletedAt)
	events.AssertExpectations(t)
}

func TestComplete_DirectlyFromConfirmed(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	updated := reservationInStatus(domain.StatusCompleted)
	updated.CompletedAt = ptr.Ptr(testNow)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusConfirmed), nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusConfirmed},
		mock.Anything).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil).Once()
	events.On("Publish", mock.Anything, domain.EventReservationCompleted, updated).Return(nil)

	_, err := svc.Complete(context.Background(), 7)

	assert.NoError(t, err)
}

func TestCancel_DefaultsReasonToEmptyString(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	updated := reservationInStatus(domain.StatusCancelled)
	updated.CancelledAt = ptr.Ptr(testNow)
	updated.CancellationReason = ptr.Ptr("")

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusPending), nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusPending},
		reservationRepo.TransitionUpdate{
			Status:             domain.StatusCancelled,
			CancellationReason: ptr.Ptr(""),
			CancelledAt:        ptr.Ptr(testNow),
		}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil).Once()
	events.On("Publish", mock.Anything, domain.EventReservationCancelled, updated).Return(nil)

	result, err := svc.Cancel(context.Background(), 7, nil)

	assert.NoError(t, err)
	assert.Equal(t, testNow, *result.CancelledAt)
	repo.AssertExpectations(t)
}

func TestCancel_TerminalStatusRejected(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	for _, status := range []domain.ReservationStatus{domain.StatusCompleted, domain.StatusCancelled} {
		repo.On("GetByID", mock.Anything, int64(7)).
			Return(reservationInStatus(status), nil).Once()

		_, err := svc.Cancel(context.Background(), 7, nil)

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	}

	repo.AssertNotCalled(t, "Transition")
	events.AssertNotCalled(t, "Publish")
}

func TestCancel_NotFound(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := newTestService(repo, new(MockEventPublisher))

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := svc.Cancel(context.Background(), 7, nil)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestTransition_LostStatusRace(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	// Между чтением и UPDATE бронь успели отменить
	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusPending), nil).Once()
	repo.On("Transition", mock.Anything, int64(7),
		[]domain.ReservationStatus{domain.StatusPending},
		mock.Anything).Return(reservationRepo.ErrStaleStatus).Once()
	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusCancelled), nil).Once()

	_, err := svc.Confirm(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	events.AssertNotCalled(t, "Publish")
}

func TestTransition_PublishFailureDoesNotFailOperation(t *testing.T) {
	repo := new(MockReservationRepository)
	events := new(MockEventPublisher)
	svc := newTestService(repo, events)

	updated := reservationInStatus(domain.StatusConfirmed)
	updated.ConfirmedAt = ptr.Ptr(testNow)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(reservationInStatus(domain.StatusPending), nil).Once()
	repo.On("Transition", mock.Anything, int64(7), mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("GetByID", mock.Anything, int64(7)).Return(updated, nil).Once()
	events.On("Publish", mock.Anything, domain.EventReservationConfirmed, updated).
		Return(errors.New("broker unreachable"))

	// Переход уже зафиксирован, сбой доставки события не откатывает его
	result, err := svc.Confirm(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, result.Status)
}
