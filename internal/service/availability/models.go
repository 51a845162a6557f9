package availability

import (
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// Result результат проверки доступности слота
type Result struct {
	Available      bool               // Остались ли места в слоте
	Capacity       int                // Вместимость услуги
	Booked         int                // Пересекающиеся активные брони
	RemainingSlots int                // Свободные места (не меньше нуля)
	PricingType    domain.PricingType // Способ ценообразования услуги
	Price          *float64           // Цена для fixed, иначе nil

	// TimeSlot и EndTime границы проверенного интервала
	TimeSlot time.Time
	EndTime  time.Time
}
