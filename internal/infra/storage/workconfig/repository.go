package workconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonhub/SalonBookingService/internal/domain"
	"github.com/salonhub/SalonBookingService/pkg/dbmetrics"
	"github.com/salonhub/SalonBookingService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек рабочего дня салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalon получает настройки рабочего дня салона
func (r *Repository) GetBySalon(ctx context.Context, salonID int64) (*domain.WorkSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"salon_id",
		"start_time",
		"end_time",
		"interval_minutes",
		"slot_step_minutes",
		"lunch_start",
		"lunch_end",
		"working_days",
		"created_at",
		"updated_at",
	).
		From("work_settings").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.WorkSettings
	var workingDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.SalonID,
		&settings.StartTime,
		&settings.EndTime,
		&settings.IntervalMinutes,
		&settings.SlotStepMinutes,
		&settings.LunchStart,
		&settings.LunchEnd,
		&workingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - scan settings: %v", ErrScanRow, err)
	}

	settings.WorkingDays = make([]int, len(workingDays))
	for i, d := range workingDays {
		settings.WorkingDays[i] = int(d)
	}
	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки рабочего дня салона
func (r *Repository) Upsert(ctx context.Context, settings *domain.WorkSettings) (*domain.WorkSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingDays := make(pq.Int64Array, len(settings.WorkingDays))
	for i, d := range settings.WorkingDays {
		workingDays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("work_settings").
		Columns(
			"salon_id",
			"start_time",
			"end_time",
			"interval_minutes",
			"slot_step_minutes",
			"lunch_start",
			"lunch_end",
			"working_days",
		).
		Values(
			settings.SalonID,
			settings.StartTime,
			settings.EndTime,
			settings.IntervalMinutes,
			settings.SlotStepMinutes,
			settings.LunchStart,
			settings.LunchEnd,
			workingDays,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			interval_minutes = EXCLUDED.interval_minutes,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			working_days = EXCLUDED.working_days,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
