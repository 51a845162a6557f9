package domain

import "time"

// DaySlot доступность одного кандидатного слота при перечислении дня
type DaySlot struct {
	TimeSlot       time.Time
	Available      bool
	RemainingSlots int
}

// IsFull возвращает true, если в слоте не осталось мест
func (s *DaySlot) IsFull() bool {
	return s.RemainingSlots <= 0
}
