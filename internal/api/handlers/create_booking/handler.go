package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CarwashBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgValidationFailed    = "ошибка валидации запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidSchedule     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgShopNotFound        = "мойка не найдена"
	msgPersonnelNotFound   = "сотрудник не найден"
	msgActiveBookingExists = "у клиента уже есть активное бронирование"
	msgInvalidBookingDate  = "дата бронирования в прошлом"
	msgTooLateToBook       = "слишком поздно для бронирования на это время"
	msgDayUnavailable      = "сотрудник не работает в выбранный день"
	msgTimeUnavailable     = "выбранное время вне рабочего окна сотрудника"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%d, error=%v", userID, err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.ValidationDetails(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse schedule: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrShopNotFound):
			h.logger.Warn("POST /bookings - Shop not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createBooking.ErrPersonnelNotFound):
			h.logger.Warn("POST /bookings - Personnel not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgPersonnelNotFound)

		case errors.Is(err, createBooking.ErrActiveBookingExists):
			h.logger.Warn("POST /bookings - Active booking exists: user_id=%d", userID)
			handlers.RespondConflict(w, msgActiveBookingExists)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrDayUnavailable):
			handlers.RespondBadRequest(w, msgDayUnavailable)

		case errors.Is(err, createBooking.ErrTimeUnavailable):
			handlers.RespondBadRequest(w, msgTimeUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, shop_id=%d, error=%v",
				userID, req.ShopID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: appointment_id=%s, user_id=%d, shop_id=%d",
		result.AppointmentID, userID, req.ShopID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
