package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
	professionalRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/professional"
	workconfigRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/workconfig"
	"github.com/salonhub/SalonBookingService/internal/service/schedule/models"
)

// Service сервис для работы с расписаниями: настройки рабочего дня салона
// и персональные расписания мастеров
type Service struct {
	workSettingsRepo WorkSettingsRepository
	professionalRepo ProfessionalRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	workSettingsRepo WorkSettingsRepository,
	professionalRepo ProfessionalRepository,
	logger Logger,
) *Service {
	return &Service{
		workSettingsRepo: workSettingsRepo,
		professionalRepo: professionalRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetWorkSettings получает настройки рабочего дня салона.
// Салон без конфигурации получает дефолтные настройки с флагом isDefault.
func (s *Service) GetWorkSettings(ctx context.Context, salonID int64) (*models.WorkSettingsResponse, error) {
	s.logger.Info("GetWorkSettings: fetching settings for salon=%d", salonID)

	settings, err := s.workSettingsRepo.GetBySalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, workconfigRepo.ErrSettingsNotFound) {
			s.logger.Info("GetWorkSettings: salon=%d has no settings, returning defaults", salonID)
			return models.FromDomainSettings(domain.DefaultWorkSettings(salonID), true), nil
		}
		s.logger.Error("GetWorkSettings: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetWorkSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWorkSettings: successfully fetched settings for salon=%d", salonID)
	return models.FromDomainSettings(settings, false), nil
}

// UpdateWorkSettings создает или полностью заменяет настройки рабочего дня салона
func (s *Service) UpdateWorkSettings(ctx context.Context, req *models.UpdateWorkSettingsRequest) (*models.WorkSettingsResponse, error) {
	s.logger.Info("UpdateWorkSettings: updating settings for salon=%d", req.SalonID)

	settings := req.ToDomainSettings()
	if err := s.validateSettings(settings); err != nil {
		s.logger.Warn("UpdateWorkSettings: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	updated, err := s.workSettingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("UpdateWorkSettings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: UpdateWorkSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkSettings: successfully updated settings for salon=%d", req.SalonID)
	return models.FromDomainSettings(updated, false), nil
}

// GetProfessionalSchedule получает персональное расписание мастера:
// переопределение рабочих дней и актуальные заблокированные даты
func (s *Service) GetProfessionalSchedule(ctx context.Context, salonID, professionalID int64) (*models.ProfessionalScheduleResponse, error) {
	s.logger.Info("GetProfessionalSchedule: fetching schedule for professional=%d, salon=%d", professionalID, salonID)

	if err := s.checkProfessional(ctx, salonID, professionalID); err != nil {
		return nil, err
	}

	schedule, err := s.professionalRepo.GetSchedule(ctx, professionalID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetProfessionalSchedule: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfessionalSchedule: successfully fetched schedule for professional=%d (%d blocked dates)",
		professionalID, len(schedule.BlockedDates))
	return models.FromDomainSchedule(schedule), nil
}

// UpdateProfessionalSchedule обновляет персональное расписание мастера:
// переопределение рабочих дней, блокировка и разблокировка дат
func (s *Service) UpdateProfessionalSchedule(ctx context.Context, req *models.UpdateProfessionalScheduleRequest) (*models.ProfessionalScheduleResponse, error) {
	s.logger.Info("UpdateProfessionalSchedule: updating schedule for professional=%d, salon=%d",
		req.ProfessionalID, req.SalonID)

	if err := s.checkProfessional(ctx, req.SalonID, req.ProfessionalID); err != nil {
		return nil, err
	}

	if req.WorkingDays != nil {
		if err := validateWorkingDays(*req.WorkingDays); err != nil {
			s.logger.Warn("UpdateProfessionalSchedule: invalid working days for professional=%d: %v",
				req.ProfessionalID, err)
			return nil, err
		}
	}

	blockDates, err := s.parseBlockDates(req.BlockDates, req.ProfessionalID)
	if err != nil {
		s.logger.Warn("UpdateProfessionalSchedule: invalid block dates for professional=%d: %v",
			req.ProfessionalID, err)
		return nil, err
	}

	unblockDates, err := parseDates(req.UnblockDates)
	if err != nil {
		s.logger.Warn("UpdateProfessionalSchedule: invalid unblock dates for professional=%d: %v",
			req.ProfessionalID, err)
		return nil, err
	}

	if err := s.professionalRepo.SetWorkingDays(ctx, req.ProfessionalID, req.WorkingDays); err != nil {
		s.logger.Error("UpdateProfessionalSchedule: failed to set working days for professional=%d: %v",
			req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: UpdateProfessionalSchedule - failed to set working days: %v", ErrInternal, err)
	}

	for _, blocked := range blockDates {
		if err := s.professionalRepo.AddBlockedDate(ctx, blocked); err != nil {
			s.logger.Error("UpdateProfessionalSchedule: failed to block date %s for professional=%d: %v",
				blocked.Date.Format(domain.DateFormat), req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: UpdateProfessionalSchedule - failed to block date: %v", ErrInternal, err)
		}
	}

	for _, date := range unblockDates {
		err := s.professionalRepo.RemoveBlockedDate(ctx, req.ProfessionalID, date)
		if err != nil && !errors.Is(err, professionalRepo.ErrBlockedDateNotFound) {
			s.logger.Error("UpdateProfessionalSchedule: failed to unblock date %s for professional=%d: %v",
				date.Format(domain.DateFormat), req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: UpdateProfessionalSchedule - failed to unblock date: %v", ErrInternal, err)
		}
	}

	schedule, err := s.professionalRepo.GetSchedule(ctx, req.ProfessionalID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("UpdateProfessionalSchedule: failed to re-fetch schedule for professional=%d: %v",
			req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: UpdateProfessionalSchedule - failed to re-fetch schedule: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfessionalSchedule: successfully updated schedule for professional=%d", req.ProfessionalID)
	return models.FromDomainSchedule(schedule), nil
}

// Вспомогательные методы

// checkProfessional проверяет, что мастер существует и принадлежит салону
func (s *Service) checkProfessional(ctx context.Context, salonID, professionalID int64) error {
	professional, err := s.professionalRepo.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			s.logger.Warn("checkProfessional: professional id=%d not found", professionalID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("checkProfessional: repository error for professional=%d: %v", professionalID, err)
		return fmt.Errorf("%w: checkProfessional - repository error: %v", ErrInternal, err)
	}

	if professional.SalonID != salonID {
		s.logger.Warn("checkProfessional: professional id=%d does not belong to salon=%d", professionalID, salonID)
		return ErrProfessionalNotFound
	}

	return nil
}

// validateSettings валидирует настройки рабочего дня
func (s *Service) validateSettings(settings *domain.WorkSettings) error {
	if settings.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if err := settings.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}
	if err := settings.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime must be in HH:MM format", ErrInvalidInput)
	}
	if !settings.StartTime.IsBefore(settings.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if settings.IntervalMinutes < domain.MinIntervalMinutes || settings.IntervalMinutes > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: intervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}

	if settings.SlotStepMinutes < domain.MinSlotStepMinutes || settings.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	// Обед: либо обе границы, либо ни одной; окно внутри рабочего дня
	if (settings.LunchStart == nil) != (settings.LunchEnd == nil) {
		return fmt.Errorf("%w: lunchStart and lunchEnd must be set together", ErrInvalidInput)
	}
	if settings.HasLunchWindow() {
		if err := settings.LunchStart.Validate(); err != nil {
			return fmt.Errorf("%w: lunchStart must be in HH:MM format", ErrInvalidInput)
		}
		if err := settings.LunchEnd.Validate(); err != nil {
			return fmt.Errorf("%w: lunchEnd must be in HH:MM format", ErrInvalidInput)
		}
		if !settings.LunchStart.IsBefore(*settings.LunchEnd) {
			return fmt.Errorf("%w: lunchStart must be before lunchEnd", ErrInvalidInput)
		}
		if settings.LunchStart.IsBefore(settings.StartTime) || settings.EndTime.IsBefore(*settings.LunchEnd) {
			return fmt.Errorf("%w: lunch window must be within working hours", ErrInvalidInput)
		}
	}

	return validateWorkingDays(settings.WorkingDays)
}

// validateWorkingDays проверяет дни недели: 0..6 без повторов
func validateWorkingDays(days []int) error {
	seen := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: working day must be between 0 (Sunday) and 6 (Saturday)", ErrInvalidInput)
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: duplicate working day %d", ErrInvalidInput, d)
		}
		seen[d] = struct{}{}
	}
	return nil
}

// parseBlockDates парсит и валидирует даты блокировки
func (s *Service) parseBlockDates(reqs []models.BlockDateRequest, professionalID int64) ([]domain.BlockedDate, error) {
	blocked := make([]domain.BlockedDate, 0, len(reqs))
	for _, r := range reqs {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, r.Date)
		}
		if r.Reason != nil && len(*r.Reason) > domain.MaxBlockedDateReasonLength {
			return nil, fmt.Errorf("%w: blocked date reason too long", ErrInvalidInput)
		}
		blocked = append(blocked, domain.BlockedDate{
			ProfessionalID: professionalID,
			Date:           date,
			Reason:         r.Reason,
		})
	}
	return blocked, nil
}

// parseDates парсит список дат в формате YYYY-MM-DD
func parseDates(values []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, v)
		}
		dates = append(dates, date)
	}
	return dates, nil
}
