package create_booking

import (
	"errors"
	"net/http"

	"github.com/salonhub/SalonBookingService/internal/api/handlers"
	"github.com/salonhub/SalonBookingService/internal/api/middleware"
	createBooking "github.com/salonhub/SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgSlotConflict         = "выбранный временной слот уже занят"
	msgProfessionalNotFound = "мастер не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgInvalidBookingDate   = "некорректная дата бронирования"
	msgDayUnavailable       = "выбранная дата недоступна для записи"
	msgInvalidRequest       = "некорректные данные запроса"
)

// CouponRejectedResponse ответ при отклонении промокода
type CouponRejectedResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

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

// Handle POST /api/v1/bookings
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

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var couponErr *createBooking.CouponRejectedError
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, professional_id=%d, date=%s, start=%s",
				userID, req.ProfessionalID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.As(err, &couponErr):
			// Причина отклонения формулируется для показа пользователю;
			// retryable = проигрыш гонки применения, клиент может повторить
			h.logger.Warn("POST /bookings - Coupon rejected: user_id=%d, reason=%s, retryable=%t",
				userID, couponErr.Reason, couponErr.Retryable)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, CouponRejectedResponse{
				Error:     couponErr.Reason,
				Retryable: couponErr.Retryable,
			})

		case errors.Is(err, createBooking.ErrProfessionalNotFound):
			h.logger.Warn("POST /bookings - Professional not found: user_id=%d, professional_id=%d",
				userID, req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: user_id=%d, salon_id=%d, service_ids=%v",
				userID, req.SalonID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDayUnavailable):
			h.logger.Warn("POST /bookings - Day unavailable: user_id=%d, professional_id=%d, date=%s",
				userID, req.ProfessionalID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDayUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, salon_id=%d, error=%v",
				userID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, salon_id=%d",
		result.ID, userID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
