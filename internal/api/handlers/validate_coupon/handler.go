package validate_coupon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonhub/SalonBookingService/internal/api/handlers"
	"github.com/salonhub/SalonBookingService/internal/api/middleware"
	validateCoupon "github.com/salonhub/SalonBookingService/internal/usecase/validate_coupon"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequest     = "некорректные данные запроса"
)

type Handler struct {
	useCase ValidateCouponUseCase
	logger  Logger
}

func NewHandler(useCase ValidateCouponUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/coupons/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/coupons/validate - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/coupons/validate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ValidateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/coupons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(salonID, userID))
	if err != nil {
		switch {
		case errors.Is(err, validateCoupon.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/coupons/validate - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /salons/{id}/coupons/validate - Failed to validate coupon: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Отклоненный купон - не ошибка HTTP: клиент показывает причину из тела
	h.logger.Info("POST /salons/{id}/coupons/validate - Coupon validated: salon_id=%d, user_id=%d, valid=%t",
		salonID, userID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResult(result))
}
