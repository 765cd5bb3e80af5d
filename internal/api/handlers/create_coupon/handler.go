package create_coupon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonhub/SalonBookingService/internal/api/handlers"
	"github.com/salonhub/SalonBookingService/internal/service/coupons"
	"github.com/salonhub/SalonBookingService/internal/service/coupons/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateCode      = "промокод с таким кодом уже существует"
	msgInvalidRequest     = "некорректные данные запроса"
)

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/coupons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/coupons - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.CreateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/coupons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrDuplicateCode):
			h.logger.Warn("POST /salons/{id}/coupons - Duplicate code: salon_id=%d, code=%s", salonID, req.Code)
			handlers.RespondConflict(w, msgDuplicateCode)

		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/coupons - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /salons/{id}/coupons - Failed to create coupon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/coupons - Coupon created successfully: coupon_id=%d, salon_id=%d",
		result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
