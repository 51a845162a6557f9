package create_reservation

import "time"

// Request модель запроса на создание брони
type Request struct {
	UserID      int64     // ID клиента
	GarageID    int64     // ID гаража
	ServiceID   int64     // ID услуги каталога
	TimeSlot    time.Time // Начало работ
	ClientNotes *string   // Заметки клиента (опционально)
}

// Response модель ответа с созданной бронью
type Response struct {
	ID        int64     // ID созданной брони
	UserID    int64     // ID клиента
	GarageID  int64     // ID гаража
	ServiceID int64     // ID услуги
	TimeSlot  time.Time // Начало работ
	EndTime   time.Time // Конец работ (начало + длительность услуги)
	Status    string    // Начальный статус по режиму ценообразования

	// Price заполнена только для fixed-услуг
	Price *float64

	ClientNotes *string

	// Денормализованные данные
	GarageName  string
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time

	// RemainingSlots свободные места в слоте после создания брони
	RemainingSlots int
}
