package domain

import "time"

// ReservationStatus статус брони в жизненном цикле
type ReservationStatus string

const (
	StatusPending             ReservationStatus = "pending"
	StatusPendingQuote        ReservationStatus = "pending_quote"
	StatusPendingConsultation ReservationStatus = "pending_consultation"
	StatusQuoteProvided       ReservationStatus = "quote_provided"
	StatusConfirmed           ReservationStatus = "confirmed"
	StatusInProgress          ReservationStatus = "in_progress"
	StatusCompleted           ReservationStatus = "completed"
	StatusCancelled           ReservationStatus = "cancelled"
)

// TransitionAction действие, переводящее бронь из одного статуса в другой
type TransitionAction string

const (
	ActionConfirm      TransitionAction = "confirm"
	ActionProvideQuote TransitionAction = "provide_quote"
	ActionAcceptQuote  TransitionAction = "accept_quote"
	ActionStart        TransitionAction = "start"
	ActionComplete     TransitionAction = "complete"
	ActionCancel       TransitionAction = "cancel"
)

// transitions единственный источник правды о допустимых переходах статусов.
// Любая пара (статус, действие), отсутствующая в таблице, запрещена.
// pending_consultation переводится в confirmed внешним консультационным
// процессом, ядро для него поддерживает только отмену.
var transitions = map[ReservationStatus]map[TransitionAction]ReservationStatus{
	StatusPending: {
		ActionConfirm: StatusConfirmed,
		ActionCancel:  StatusCancelled,
	},
	StatusPendingQuote: {
		ActionProvideQuote: StatusQuoteProvided,
		ActionCancel:       StatusCancelled,
	},
	StatusPendingConsultation: {
		ActionCancel: StatusCancelled,
	},
	StatusQuoteProvided: {
		ActionAcceptQuote: StatusConfirmed,
		ActionCancel:      StatusCancelled,
	},
	StatusConfirmed: {
		ActionStart:    StatusInProgress,
		ActionComplete: StatusCompleted,
		ActionCancel:   StatusCancelled,
	},
	StatusInProgress: {
		ActionComplete: StatusCompleted,
		ActionCancel:   StatusCancelled,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// TransitionTarget возвращает целевой статус для пары (статус, действие).
// Второе значение false, если переход запрещён таблицей.
func TransitionTarget(from ReservationStatus, action TransitionAction) (ReservationStatus, bool) {
	actions, ok := transitions[from]
	if !ok {
		return "", false
	}
	to, ok := actions[action]
	return to, ok
}

// CanTransition возвращает true, если действие допустимо из текущего статуса
func CanTransition(from ReservationStatus, action TransitionAction) bool {
	_, ok := TransitionTarget(from, action)
	return ok
}

// IsValid возвращает true для известного статуса
func (s ReservationStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal возвращает true для конечных статусов (completed, cancelled)
func (s ReservationStatus) IsTerminal() bool {
	actions, ok := transitions[s]
	return ok && len(actions) == 0
}

// ConsumesCapacity возвращает true, если бронь в этом статусе занимает
// место в расписании. Заявки на расчёт цены и консультацию место не занимают,
// пока не подтверждены.
func (s ReservationStatus) ConsumesCapacity() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

// Reservation бронь услуги в автосервисе
type Reservation struct {
	ID        int64
	UserID    int64
	GarageID  int64
	ServiceID int64

	// TimeSlot начало работ; EndTime вычисляется при создании как
	// TimeSlot + длительность услуги и больше не пересчитывается
	TimeSlot time.Time
	EndTime  time.Time

	Status ReservationStatus

	// Price отсутствует до назначения: для fixed заполняется при создании,
	// для quote - при выставлении сметы
	Price *float64

	ClientNotes        *string
	GarageNotes        *string
	CancellationReason *string

	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	// Денормализованные данные для событий и шаблонов уведомлений
	GarageName  string
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled возвращает true, если бронь ещё можно отменить
func (r *Reservation) CanBeCancelled() bool {
	return CanTransition(r.Status, ActionCancel)
}

// IsOwnedBy возвращает true, если бронь принадлежит пользователю
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.UserID == userID
}

// ReservationFilter фильтр для выборки броней гаража
type ReservationFilter struct {
	GarageID  int64              // Обязательный параметр
	UserID    *int64             // Фильтр по клиенту (опционально)
	StartDate *time.Time         // Начало периода (опционально)
	EndDate   *time.Time         // Конец периода (опционально)
	Status    *ReservationStatus // Фильтр по статусу (опционально)
}
