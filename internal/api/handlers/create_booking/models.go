package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CarwashBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

const msgBookingCreated = "бронирование создано"

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ShopID       int64   `json:"shop_id" validate:"required,gt=0"`
	PersonnelID  *int64  `json:"personnel_id,omitempty" validate:"omitempty,gt=0"`
	ServiceName  string  `json:"service_name" validate:"required,max=255"`
	Price        float64 `json:"price" validate:"gte=0"`
	ScheduleDate string  `json:"schedule_date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	ScheduleTime string  `json:"schedule_time" validate:"required"`                     // "10:00"
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Message       string  `json:"message"`
	AppointmentID string  `json:"appointment_id"`
	UserID        int64   `json:"user_id"`
	ShopID        int64   `json:"shop_id"`
	ShopName      string  `json:"shop_name"`
	PersonnelID   *int64  `json:"personnel_id,omitempty"`
	ServiceName   string  `json:"service_name"`
	Price         float64 `json:"price"`
	ScheduleDate  string  `json:"schedule_date"`
	ScheduleTime  string  `json:"schedule_time"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ScheduleDate)
	if err != nil {
		return nil, err
	}

	scheduleTime, err := types.NewTimeStringFromString(r.ScheduleTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:       userID,
		ShopID:       r.ShopID,
		PersonnelID:  r.PersonnelID,
		ServiceName:  r.ServiceName,
		Price:        r.Price,
		Date:         date,
		ScheduleTime: scheduleTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Message:       msgBookingCreated,
		AppointmentID: resp.AppointmentID,
		UserID:        resp.UserID,
		ShopID:        resp.ShopID,
		ShopName:      resp.ShopName,
		PersonnelID:   resp.PersonnelID,
		ServiceName:   resp.ServiceName,
		Price:         resp.Price,
		ScheduleDate:  resp.ScheduleDate.Format(domain.DateFormat),
		ScheduleTime:  resp.ScheduleTime.String(),
		Status:        resp.Status.String(),
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
