package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
	bookingRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/booking"
	professionalRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/professional"
	servicesRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/services"
	workconfigRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/workconfig"
	validateCoupon "github.com/salonhub/SalonBookingService/internal/usecase/validate_coupon"
)

// UseCase use case создания бронирования.
//
// Подтверждение - единственное место, где бронирование материализуется:
// повторная проверка конфликта, применение промокода и вставка строки
// выполняются в одной serializable-транзакции. Денормализованные строки
// услуг, журнал использований промокода и кэш профиля клиента пишутся
// после коммита: их отказ не откатывает созданное бронирование, а
// логируется для ручной сверки.
type UseCase struct {
	bookingRepo      BookingRepository
	workSettingsRepo WorkSettingsRepository
	professionalRepo ProfessionalRepository
	servicesRepo     ServicesRepository
	couponUsageRepo  CouponUsageRepository
	profileRepo      ProfileRepository
	couponValidator  CouponValidator
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	workSettingsRepo WorkSettingsRepository,
	professionalRepo ProfessionalRepository,
	servicesRepo ServicesRepository,
	couponUsageRepo CouponUsageRepository,
	profileRepo ProfileRepository,
	couponValidator CouponValidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		workSettingsRepo: workSettingsRepo,
		professionalRepo: professionalRepo,
		servicesRepo:     servicesRepo,
		couponUsageRepo:  couponUsageRepo,
		profileRepo:      profileRepo,
		couponValidator:  couponValidator,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: salon=%d, user=%d, professional=%d, services=%v, date=%s, start=%s",
		req.SalonID, req.UserID, req.ProfessionalID, req.ServiceIDs,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем мастера
	professional, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.Active || professional.SalonID != req.SalonID {
		uc.logger.Warn("CreateBooking: professional id=%d inactive or not in salon=%d",
			req.ProfessionalID, req.SalonID)
		return nil, ErrProfessionalNotFound
	}

	// 3. Получаем выбранные услуги; цена и длительность берутся из каталога,
	// клиентскому вводу не доверяем
	selectedServices, err := uc.servicesRepo.GetActiveByIDs(ctx, req.SalonID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: some of services %v not found in salon=%d", req.ServiceIDs, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	totalMinutes := domain.TotalDuration(selectedServices)
	subtotal := domain.TotalPrice(selectedServices)

	// 4. Создание внутри одной serializable-транзакции: проверка дня,
	// повторная проверка конфликта под FOR UPDATE, применение промокода,
	// вставка бронирования
	var created *domain.Booking
	var couponResult *validateCoupon.Result

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Настройки рабочего дня (дефолт при отсутствии конфигурации)
		settings, err := uc.workSettingsRepo.GetBySalon(txCtx, req.SalonID)
		if err != nil && !errors.Is(err, workconfigRepo.ErrSettingsNotFound) {
			return fmt.Errorf("%w: failed to get work settings: %v", ErrInternal, err)
		}
		if settings == nil {
			settings = domain.DefaultWorkSettings(req.SalonID)
		}

		// 4.2. Персональное расписание и эффективный календарь
		schedule, err := uc.professionalRepo.GetSchedule(txCtx, req.ProfessionalID, now)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		calendar := domain.ResolveCalendar(settings, schedule, now)
		if truncatedBefore(req.Date, now) {
			return ErrInvalidDate
		}
		if !calendar.IsBookable(req.Date, now) {
			return ErrDayUnavailable
		}

		// 4.3. Повторная проверка конфликта слота. Строки дня блокируются
		// FOR UPDATE до конца транзакции, так что конкурирующее создание
		// на ту же дату сериализуется здесь.
		existing, err := uc.bookingRepo.GetActiveByProfessionalAndDate(
			txCtx, req.ProfessionalID, req.Date.Format(domain.DateFormat))
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		start := req.StartTime.Minutes()
		newInterval := domain.Interval{Start: start, End: start + totalMinutes}
		if err := checkSlotConflict(newInterval, existing); err != nil {
			return err
		}

		// 4.4. Применение промокода: единственный вызов с побочным эффектом.
		// Отказ купона откатывает транзакцию целиком - бронирование без
		// обещанной скидки не создается.
		totalPrice := subtotal
		var couponID *int64

		if req.CouponCode != nil {
			result, err := uc.couponValidator.Execute(txCtx, &validateCoupon.Request{
				SalonID:  req.SalonID,
				UserID:   req.UserID,
				Code:     *req.CouponCode,
				Subtotal: subtotal,
				Action:   validateCoupon.ActionApply,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to apply coupon: %v", ErrInternal, err)
			}
			if !result.Valid {
				return &CouponRejectedError{Reason: result.Reason, Retryable: result.Retryable}
			}
			couponResult = result
			couponID = &result.CouponID
			totalPrice = result.FinalTotal
		}

		// 4.5. Вставка бронирования; частичный уникальный индекс по
		// неотмененным бронированиям - последний арбитр гонки за слот
		booking := &domain.Booking{
			SalonID:         req.SalonID,
			UserID:          req.UserID,
			ProfessionalID:  req.ProfessionalID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: totalMinutes,
			TotalPrice:      totalPrice,
			CouponID:        couponID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			Status:          domain.StatusConfirmed,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		var couponErr *CouponRejectedError
		switch {
		case errors.Is(err, ErrSlotConflict):
			uc.logger.Warn("CreateBooking: slot %s %s is taken for professional=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, req.ProfessionalID)
		case errors.As(err, &couponErr):
			uc.logger.Warn("CreateBooking: coupon rejected for user=%d: %s (retryable=%t)",
				req.UserID, couponErr.Reason, couponErr.Retryable)
		case errors.Is(err, ErrDayUnavailable), errors.Is(err, ErrInvalidDate):
			uc.logger.Warn("CreateBooking: date %s unavailable for professional=%d: %v",
				req.Date.Format(domain.DateFormat), req.ProfessionalID, err)
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d for user=%d (total=%.2f)",
		created.ID, req.UserID, created.TotalPrice)

	// 5. Шаги после коммита. Бронирование уже существует и слот занят;
	// отказ любого из шагов не отменяет его, а требует ручной сверки.
	links := make([]domain.BookingServiceLink, len(selectedServices))
	bookedServices := make([]BookedService, len(selectedServices))
	for i, s := range selectedServices {
		links[i] = domain.BookingServiceLink{
			BookingID:       created.ID,
			ServiceID:       s.ID,
			ServiceName:     s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
		bookedServices[i] = BookedService{
			ServiceID:       s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
	}

	if err := uc.bookingRepo.CreateServiceLinks(ctx, links); err != nil {
		uc.logger.Error("CreateBooking: booking id=%d created but service links insert failed, manual reconciliation required: %v",
			created.ID, err)
	}

	if couponResult != nil {
		if err := uc.couponUsageRepo.InsertUsage(ctx, couponResult.CouponID, created.ID, req.UserID); err != nil {
			uc.logger.Error("CreateBooking: booking id=%d created but coupon usage insert failed for coupon id=%d, manual reconciliation required: %v",
				created.ID, couponResult.CouponID, err)
		}
	}

	if err := uc.profileRepo.Upsert(ctx, req.UserID, req.ClientName, req.ClientPhone); err != nil {
		uc.logger.Warn("CreateBooking: failed to upsert client profile for user=%d: %v", req.UserID, err)
	}

	discountAmount := 0.0
	var appliedCode *string
	if couponResult != nil {
		discountAmount = couponResult.DiscountAmount
		code := couponResult.Code
		appliedCode = &code
	}

	return &Response{
		ID:              created.ID,
		SalonID:         created.SalonID,
		UserID:          created.UserID,
		ProfessionalID:  created.ProfessionalID,
		BookingDate:     created.BookingDate,
		StartTime:       created.StartTime,
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
		Services:        bookedServices,
		Subtotal:        subtotal,
		DiscountAmount:  discountAmount,
		TotalPrice:      created.TotalPrice,
		CouponCode:      appliedCode,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

// truncatedBefore сравнивает только календарные дни
func truncatedBefore(date, now time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(n)
}
