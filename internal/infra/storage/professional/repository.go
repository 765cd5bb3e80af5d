package professional

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonhub/SalonBookingService/internal/domain"
	"github.com/salonhub/SalonBookingService/pkg/dbmetrics"
	"github.com/salonhub/SalonBookingService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий мастеров и их персональных расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"active",
		"created_at",
		"updated_at",
	).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Professional
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.SalonID,
		&p.Name,
		&p.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan professional: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// GetSchedule получает персональное расписание мастера: переопределение
// рабочих дней (NULL = наследование от салона) и заблокированные даты.
// Прошедшие блокировки отфильтровываются на уровне запроса - они не
// должны влиять на будущие слоты.
// Отсутствие строки расписания - валидное состояние (нет переопределений).
func (r *Repository) GetSchedule(ctx context.Context, professionalID int64, today time.Time) (*domain.ProfessionalSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule := &domain.ProfessionalSchedule{
		ProfessionalID: professionalID,
		BlockedDates:   make([]domain.BlockedDate, 0),
	}

	query, args, err := psqlbuilder.Select("working_days").
		From("professional_schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var workingDays pq.Int64Array
	err = executor.QueryRowContext(ctx, query, args...).Scan(&workingDays)
	switch {
	case err == sql.ErrNoRows:
		// Нет строки - нет переопределений
	case err != nil:
		return nil, fmt.Errorf("%w: GetSchedule - scan schedule: %v", ErrScanRow, err)
	case workingDays != nil:
		days := make([]int, len(workingDays))
		for i, d := range workingDays {
			days[i] = int(d)
		}
		schedule.WorkingDays = &days
	}

	blockedQuery, blockedArgs, err := psqlbuilder.Select(
		"professional_id",
		"blocked_date",
		"reason",
	).
		From("professional_blocked_dates").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"blocked_date": today.Format(domain.DateFormat)}).
		OrderBy("blocked_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build blocked dates query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, blockedQuery, blockedArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - execute blocked dates query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var blocked domain.BlockedDate
		if err := rows.Scan(&blocked.ProfessionalID, &blocked.Date, &blocked.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetSchedule - scan blocked date: %v", ErrScanRow, err)
		}
		schedule.BlockedDates = append(schedule.BlockedDates, blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// SetWorkingDays устанавливает переопределение рабочих дней мастера.
// nil означает сброс переопределения (наследование настроек салона).
func (r *Repository) SetWorkingDays(ctx context.Context, professionalID int64, workingDays *[]int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var daysValue interface{}
	if workingDays != nil {
		days := make(pq.Int64Array, len(*workingDays))
		for i, d := range *workingDays {
			days[i] = int64(d)
		}
		daysValue = days
	}

	query, args, err := psqlbuilder.Insert("professional_schedules").
		Columns("professional_id", "working_days").
		Values(professionalID, daysValue).
		Suffix(`ON CONFLICT (professional_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetWorkingDays - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetWorkingDays - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// AddBlockedDate блокирует дату для мастера. Повторная блокировка той же
// даты обновляет причину.
func (r *Repository) AddBlockedDate(ctx context.Context, blocked domain.BlockedDate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("professional_blocked_dates").
		Columns("professional_id", "blocked_date", "reason").
		Values(blocked.ProfessionalID, blocked.Date.Format(domain.DateFormat), blocked.Reason).
		Suffix(`ON CONFLICT (professional_id, blocked_date) DO UPDATE SET
			reason = EXCLUDED.reason`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddBlockedDate - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddBlockedDate - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveBlockedDate снимает блокировку даты
func (r *Repository) RemoveBlockedDate(ctx context.Context, professionalID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("professional_blocked_dates").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"blocked_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}
