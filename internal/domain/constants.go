package domain

// Рабочее окно для перечисления слотов дня.
// Фиксированная политика платформы, не настраивается на уровне гаража.
const (
	DayWindowOpenHour   = 8
	DayWindowCloseHour  = 18
	SlotIntervalMinutes = 30
)

// Business validation constants
const (
	MaxClientNotesLength        = 500
	MaxGarageNotesLength        = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Роли пользователей, передаваемые шлюзом в заголовке X-User-Role
const (
	RoleCustomer    = "customer"
	RoleGarageOwner = "garage_owner"
	RoleAdmin       = "admin"
)

// Имена доменных событий. Полезная нагрузка каждого события - полная
// запись брони; доставку уведомлений выполняет внешний подписчик.
const (
	EventReservationCreated   = "reservation.created"
	EventQuoteProvided        = "quote.provided"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCompleted = "reservation.completed"
	EventReservationCancelled = "reservation.cancelled"
)

// CapacityStatuses статусы, занимающие место в расписании.
// Используется при подсчёте пересекающихся броней.
var CapacityStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
