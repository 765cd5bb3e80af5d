package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/SalonBookingService/internal/domain"
	professionalRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/professional"
	servicesRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/services"
	workconfigRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/workconfig"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	workSettingsRepo WorkSettingsRepository
	professionalRepo ProfessionalRepository
	servicesRepo     ServicesRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	workSettingsRepo WorkSettingsRepository,
	professionalRepo ProfessionalRepository,
	servicesRepo ServicesRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		workSettingsRepo: workSettingsRepo,
		professionalRepo: professionalRepo,
		servicesRepo:     servicesRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, professional=%d, services=%v, date=%s",
		req.SalonID, req.ProfessionalID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем мастера
	professional, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.Active || professional.SalonID != req.SalonID {
		uc.logger.Warn("GetAvailableSlots: professional id=%d inactive or not in salon=%d",
			req.ProfessionalID, req.SalonID)
		return nil, ErrProfessionalNotFound
	}

	// 4. Получаем выбранные услуги и считаем суммарную длительность и цену
	selectedServices, err := uc.servicesRepo.GetActiveByIDs(ctx, req.SalonID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: some of services %v not found in salon=%d", req.ServiceIDs, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	totalMinutes := domain.TotalDuration(selectedServices)
	totalPrice := domain.TotalPrice(selectedServices)

	// 5. Получаем настройки рабочего дня салона
	settings, err := uc.workSettingsRepo.GetBySalon(ctx, req.SalonID)
	if err != nil && !errors.Is(err, workconfigRepo.ErrSettingsNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get work settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get work settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultWorkSettings(req.SalonID)
		uc.logger.Info("GetAvailableSlots: using default work settings for salon=%d", req.SalonID)
	}

	if settings.SlotStepMinutes != domain.ServiceBlockMinutes {
		uc.logger.Warn("GetAvailableSlots: salon=%d configures slot_step_minutes=%d but slot computation uses fixed %d-minute cadence",
			req.SalonID, settings.SlotStepMinutes, domain.ServiceBlockMinutes)
	}

	// 6. Получаем персональное расписание мастера и собираем эффективный календарь
	schedule, err := uc.professionalRepo.GetSchedule(ctx, req.ProfessionalID, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	calendar := domain.ResolveCalendar(settings, schedule, now)

	// 7. Проверяем, что день в принципе доступен для записи.
	// Нерабочий день, заблокированная дата, прошедшая дата и пустой набор
	// рабочих дней - не ошибки, а валидный пустой ответ.
	if !calendar.IsBookable(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is not bookable for professional=%d",
			req.Date.Format(domain.DateFormat), req.ProfessionalID)
		return uc.emptyResponse(req, totalMinutes, totalPrice), nil
	}

	// 8. Получаем занятые интервалы из неотмененных бронирований на эту дату
	bookings, err := uc.bookingRepo.GetActiveByProfessionalAndDate(ctx, req.ProfessionalID, req.Date.Format(domain.DateFormat))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Вычисляем доступные слоты
	startTimes := computeSlots(calendar, totalMinutes, occupiedIntervals(bookings))

	roundedService := domain.RoundUpToServiceBlock(totalMinutes)
	slots := make([]Slot, len(startTimes))
	for i, start := range startTimes {
		slots[i] = Slot{
			StartTime:       start,
			DurationMinutes: roundedService,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d slots for professional=%d, date=%s (total=%dmin, rounded=%dmin)",
		len(slots), req.ProfessionalID, req.Date.Format(domain.DateFormat), totalMinutes, roundedService)

	return &Response{
		Date:           req.Date,
		SalonID:        req.SalonID,
		ProfessionalID: req.ProfessionalID,
		ServiceIDs:     req.ServiceIDs,
		TotalMinutes:   totalMinutes,
		TotalPrice:     totalPrice,
		Slots:          slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, totalMinutes int, totalPrice float64) *Response {
	return &Response{
		Date:           req.Date,
		SalonID:        req.SalonID,
		ProfessionalID: req.ProfessionalID,
		ServiceIDs:     req.ServiceIDs,
		TotalMinutes:   totalMinutes,
		TotalPrice:     totalPrice,
		Slots:          []Slot{},
	}
}
