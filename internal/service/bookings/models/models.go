package models

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	RequesterID int64   // Пользователь из заголовка авторизации
	UserID      int64   // Пользователь из пути запроса
	Status      *string // Фильтр по статусу (опционально, допускаются устаревшие написания)
}

// GetShopBookingsRequest запрос на получение бронирований мойки
type GetShopBookingsRequest struct {
	UserID          int64
	ShopID          int64
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включать завершённые, отклонённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopBookingsRequest) ToDomainFilter() (domain.ShopBookingsFilter, error) {
	filter := domain.ShopBookingsFilter{
		ShopID:          r.ShopID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Фильтр по завершённому статусу подразумевает неактивные бронирования
		if status.IsTerminal() {
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	AppointmentID string  `json:"appointment_id"`
	UserID        int64   `json:"user_id"`
	ShopID        int64   `json:"shop_id"`
	PersonnelID   *int64  `json:"personnel_id,omitempty"`
	ServiceName   string  `json:"service_name"`
	Price         float64 `json:"price"`
	ScheduleDate  string  `json:"schedule_date"` // "2025-10-15"
	ScheduleTime  string  `json:"schedule_time"` // "10:00"
	Status        string  `json:"status"`
	PaymentStatus *string `json:"payment_status,omitempty"`
	PaidAmount    float64 `json:"paid_amount"`
	Remaining     float64 `json:"remaining"`
	Notes         *string `json:"notes,omitempty"`
	StartedAt     *string `json:"started_at,omitempty"`   // ISO 8601
	CompletedAt   *string `json:"completed_at,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ReasonResponse причина последней смены статуса
type ReasonResponse struct {
	AppointmentID string  `json:"appointment_id"`
	Status        *string `json:"status,omitempty"`
	Reason        string  `json:"reason"`
}

// HistoryEntry запись истории статусов
type HistoryEntry struct {
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Reason    string    `json:"reason,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// HistoryResponse история статусов бронирования
type HistoryResponse struct {
	AppointmentID string         `json:"appointment_id"`
	History       []HistoryEntry `json:"history"`
}

// PaymentResponse платёж по бронированию
type PaymentResponse struct {
	PaymentID     string    `json:"payment_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	PaymentStatus string    `json:"payment_status"`
	ReceiptURL    *string   `json:"receipt_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentsResponse платежи и остаток по бронированию
type PaymentsResponse struct {
	AppointmentID string            `json:"appointment_id"`
	Price         float64           `json:"price"`
	Paid          float64           `json:"paid"`
	Remaining     float64           `json:"remaining"`
	PaymentStatus *string           `json:"payment_status,omitempty"`
	Payments      []PaymentResponse `json:"payments"`
}

// PersonnelResponse сотрудник мойки
type PersonnelResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	DayAvailable  string `json:"day_available"`
	TimeAvailable string `json:"time_available"`
}

// PersonnelListResponse список сотрудников мойки
type PersonnelListResponse struct {
	ShopID    int64               `json:"shop_id"`
	Personnel []PersonnelResponse `json:"personnel"`
}

// RefundResponse заявка на возврат
type RefundResponse struct {
	ID          int64      `json:"id"`
	Customer    int64      `json:"customer"`
	BookingID   string     `json:"booking_id"`
	Amount      float64    `json:"amount"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// RefundListResponse список заявок на возврат
type RefundListResponse struct {
	Refunds []RefundResponse `json:"refunds"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		AppointmentID: b.AppointmentID,
		UserID:        b.UserID,
		ShopID:        b.ShopID,
		PersonnelID:   b.PersonnelID,
		ServiceName:   b.ServiceName,
		Price:         b.Price,
		ScheduleDate:  b.ScheduleDate.Format(domain.DateFormat),
		ScheduleTime:  b.ScheduleTime.String(),
		Status:        string(b.Status),
		PaidAmount:    b.PaidAmount,
		Remaining:     b.RemainingBalance(),
		Notes:         b.Notes,
		StartedAt:     formatTime(b.StartedAt),
		CompletedAt:   formatTime(b.CompletedAt),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.PaymentStatus != nil {
		ps := string(*b.PaymentStatus)
		resp.PaymentStatus = &ps
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainHistory конвертирует историю статусов
func FromDomainHistory(appointmentID string, entries []*domain.StatusHistory) *HistoryResponse {
	resp := &HistoryResponse{
		AppointmentID: appointmentID,
		History:       make([]HistoryEntry, 0, len(entries)),
	}

	for _, e := range entries {
		resp.History = append(resp.History, HistoryEntry{
			OldStatus: string(e.OldStatus),
			NewStatus: string(e.NewStatus),
			ChangedBy: e.ChangedBy,
			Reason:    e.Reason,
			ChangedAt: e.ChangedAt,
		})
	}

	return resp
}

// FromDomainPayments конвертирует платежи; итоги берутся из бронирования
func FromDomainPayments(b *domain.Booking, payments []*domain.Payment) *PaymentsResponse {
	resp := &PaymentsResponse{
		AppointmentID: b.AppointmentID,
		Price:         b.Price,
		Paid:          b.PaidAmount,
		Remaining:     b.RemainingBalance(),
		Payments:      make([]PaymentResponse, 0, len(payments)),
	}

	if b.PaymentStatus != nil {
		ps := string(*b.PaymentStatus)
		resp.PaymentStatus = &ps
	}

	for _, p := range payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			PaymentID:     p.PaymentID,
			Amount:        p.Amount,
			Method:        p.Method,
			PaymentStatus: string(p.PaymentStatus),
			ReceiptURL:    p.ReceiptURL,
			CreatedAt:     p.CreatedAt,
		})
	}

	return resp
}

// FromDomainPersonnel конвертирует список сотрудников
func FromDomainPersonnel(shopID int64, list []*domain.Personnel) *PersonnelListResponse {
	resp := &PersonnelListResponse{
		ShopID:    shopID,
		Personnel: make([]PersonnelResponse, 0, len(list)),
	}

	for _, p := range list {
		resp.Personnel = append(resp.Personnel, PersonnelResponse{
			ID:            p.ID,
			FullName:      p.FullName,
			DayAvailable:  p.DayAvailable,
			TimeAvailable: p.TimeAvailable,
		})
	}

	return resp
}

// FromDomainRefunds конвертирует список заявок на возврат
func FromDomainRefunds(refunds []*domain.RefundRequest) *RefundListResponse {
	resp := &RefundListResponse{
		Refunds: make([]RefundResponse, 0, len(refunds)),
	}

	for _, r := range refunds {
		resp.Refunds = append(resp.Refunds, RefundResponse{
			ID:          r.ID,
			Customer:    r.Customer,
			BookingID:   r.BookingID,
			Amount:      r.Amount,
			Reason:      r.Reason,
			Status:      string(r.Status),
			RequestedAt: r.RequestedAt,
			DecidedAt:   r.DecidedAt,
		})
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
