package get_day_slots

import "time"

// Request модель запроса на получение слотов дня
type Request struct {
	GarageID  int64     // ID гаража
	ServiceID int64     // ID услуги каталога
	Date      time.Time // Дата (время игнорируется)
}

// Slot доступность одного кандидата слота
type Slot struct {
	TimeSlot       string `json:"timeSlot"` // ISO 8601 format
	Available      bool   `json:"available"`
	RemainingSlots int    `json:"remainingSlots"`
}

// Response модель ответа со слотами дня
type Response struct {
	Date  string `json:"date"` // "2025-10-15"
	Slots []Slot `json:"slots"`
}
