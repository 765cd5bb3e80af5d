package models

import (
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
	"github.com/salonhub/SalonBookingService/pkg/types"
)

// Request модели

// UpdateWorkSettingsRequest запрос на обновление настроек рабочего дня салона.
// Запрос полный (не частичный): переданные значения полностью заменяют
// текущую конфигурацию салона.
type UpdateWorkSettingsRequest struct {
	SalonID         int64   `json:"salonId"`
	StartTime       string  `json:"startTime"`       // "09:00"
	EndTime         string  `json:"endTime"`         // "18:00"
	IntervalMinutes int     `json:"intervalMinutes"` // Буфер после каждого бронирования
	SlotStepMinutes int     `json:"slotStepMinutes"` // Шаг сетки слотов
	LunchStart      *string `json:"lunchStart,omitempty"`
	LunchEnd        *string `json:"lunchEnd,omitempty"`
	WorkingDays     []int   `json:"workingDays"` // 0=воскресенье .. 6=суббота
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpdateWorkSettingsRequest) ToDomainSettings() *domain.WorkSettings {
	settings := &domain.WorkSettings{
		SalonID:         r.SalonID,
		StartTime:       types.TimeString(r.StartTime),
		EndTime:         types.TimeString(r.EndTime),
		IntervalMinutes: r.IntervalMinutes,
		SlotStepMinutes: r.SlotStepMinutes,
		WorkingDays:     r.WorkingDays,
	}

	if r.LunchStart != nil {
		ls := types.TimeString(*r.LunchStart)
		settings.LunchStart = &ls
	}
	if r.LunchEnd != nil {
		le := types.TimeString(*r.LunchEnd)
		settings.LunchEnd = &le
	}

	return settings
}

// BlockDateRequest запрос на блокировку даты мастера
type BlockDateRequest struct {
	Date   string  `json:"date"` // "2026-08-28"
	Reason *string `json:"reason,omitempty"`
}

// UpdateProfessionalScheduleRequest запрос на обновление персонального
// расписания мастера
type UpdateProfessionalScheduleRequest struct {
	SalonID        int64              `json:"salonId"`
	ProfessionalID int64              `json:"professionalId"`
	WorkingDays    *[]int             `json:"workingDays"` // null = наследовать настройки салона
	BlockDates     []BlockDateRequest `json:"blockDates,omitempty"`
	UnblockDates   []string           `json:"unblockDates,omitempty"` // "2026-08-28"
}

// Response модели

// WorkSettingsResponse ответ с настройками рабочего дня салона
type WorkSettingsResponse struct {
	SalonID         int64     `json:"salonId"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	IntervalMinutes int       `json:"intervalMinutes"`
	SlotStepMinutes int       `json:"slotStepMinutes"`
	LunchStart      *string   `json:"lunchStart,omitempty"`
	LunchEnd        *string   `json:"lunchEnd,omitempty"`
	WorkingDays     []int     `json:"workingDays"`
	IsDefault       bool      `json:"isDefault"` // true, если у салона нет своей конфигурации
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BlockedDateResponse заблокированная дата мастера
type BlockedDateResponse struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// ProfessionalScheduleResponse ответ с персональным расписанием мастера
type ProfessionalScheduleResponse struct {
	ProfessionalID int64                 `json:"professionalId"`
	WorkingDays    *[]int                `json:"workingDays"` // null = наследует настройки салона
	BlockedDates   []BlockedDateResponse `json:"blockedDates"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(w *domain.WorkSettings, isDefault bool) *WorkSettingsResponse {
	if w == nil {
		return nil
	}

	resp := &WorkSettingsResponse{
		SalonID:         w.SalonID,
		StartTime:       w.StartTime.String(),
		EndTime:         w.EndTime.String(),
		IntervalMinutes: w.IntervalMinutes,
		SlotStepMinutes: w.SlotStepMinutes,
		WorkingDays:     w.WorkingDays,
		IsDefault:       isDefault,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}

	if w.LunchStart != nil {
		ls := w.LunchStart.String()
		resp.LunchStart = &ls
	}
	if w.LunchEnd != nil {
		le := w.LunchEnd.String()
		resp.LunchEnd = &le
	}

	return resp
}

// FromDomainSchedule конвертирует персональное расписание в DTO
func FromDomainSchedule(s *domain.ProfessionalSchedule) *ProfessionalScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ProfessionalScheduleResponse{
		ProfessionalID: s.ProfessionalID,
		WorkingDays:    s.WorkingDays,
		BlockedDates:   make([]BlockedDateResponse, len(s.BlockedDates)),
	}

	for i, blocked := range s.BlockedDates {
		resp.BlockedDates[i] = BlockedDateResponse{
			Date:   blocked.Date.Format(domain.DateFormat),
			Reason: blocked.Reason,
		}
	}

	return resp
}
