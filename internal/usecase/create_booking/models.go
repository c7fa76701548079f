package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64            // ID клиента
	ShopID       int64            // ID мойки
	PersonnelID  *int64           // Выбранный сотрудник (опционально)
	ServiceName  string           // Название услуги на момент бронирования
	Price        float64          // Цена услуги на момент бронирования
	Date         time.Time        // Дата бронирования (без времени)
	ScheduleTime types.TimeString // Время, например "10:00"
	Notes        *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	AppointmentID string
	UserID        int64
	ShopID        int64
	ShopName      string
	PersonnelID   *int64
	ServiceName   string
	Price         float64
	ScheduleDate  time.Time
	ScheduleTime  types.TimeString
	Status        domain.BookingStatus
	Notes         *string
	CreatedAt     time.Time
}
