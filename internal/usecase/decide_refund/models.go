package decide_refund

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// Request модель запроса на решение по возврату
type Request struct {
	RefundID  int64
	Status    string
	DecidedBy int64 // Владелец мойки; 0 отключает проверку (внутренние вызовы)
}

// Response модель ответа после решения
type Response struct {
	RefundID      int64
	BookingID     string
	Status        domain.RefundStatus
	DecidedAt     time.Time
	BookingStatus *domain.BookingStatus // Заполняется, если бронирование было отменено
}
