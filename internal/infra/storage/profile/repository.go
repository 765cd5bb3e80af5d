package profile

import (
	"context"
	"fmt"

	"github.com/salonhub/SalonBookingService/pkg/dbmetrics"
	"github.com/salonhub/SalonBookingService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий кэша профилей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert обновляет кэшированные имя и телефон клиента.
// Идемпотентная операция, не входит в критичный путь бронирования.
func (r *Repository) Upsert(ctx context.Context, userID int64, name, phone string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("client_profiles").
		Columns("user_id", "name", "phone").
		Values(userID, name, phone).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
