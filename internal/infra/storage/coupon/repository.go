package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonhub/SalonBookingService/internal/domain"
	"github.com/salonhub/SalonBookingService/pkg/dbmetrics"
	"github.com/salonhub/SalonBookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

type DBExecutor = dbmetrics.DBExecutor

var couponColumns = []string{
	"id",
	"salon_id",
	"code",
	"discount_type",
	"discount_value",
	"max_uses",
	"current_uses",
	"active",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий промокодов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает купон по коду в рамках салона.
// Код должен быть нормализован (uppercase, trim) на уровне вызывающей стороны.
func (r *Repository) GetByCode(ctx context.Context, salonID int64, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(couponColumns...).
		From("coupons").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	coupon, err := scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}

	return coupon, nil
}

// ConditionalIncrementUsage атомарно инкрементирует счетчик использований
// купона с оптимистичной блокировкой: предикат обновления включает
// равенство current_uses прочитанному ранее значению. Если строка не
// обновлена - конкурирующее применение выиграло гонку, возвращается
// ErrStaleUsage и весь цикл валидации/применения должен быть повторен.
// Достижение max_uses (для ограниченных купонов) деактивирует купон
// тем же запросом.
func (r *Repository) ConditionalIncrementUsage(ctx context.Context, couponID int64, expectedCurrentUses int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("current_uses", squirrel.Expr("current_uses + 1")).
		Set("active", squirrel.Expr(
			"CASE WHEN max_uses < ? AND current_uses + 1 >= max_uses THEN FALSE ELSE active END",
			domain.UnlimitedUsesSentinel,
		)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": couponID}).
		Where(squirrel.Eq{"current_uses": expectedCurrentUses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConditionalIncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConditionalIncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConditionalIncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaleUsage
	}

	return nil
}

// InsertUsage добавляет запись об использовании купона (append-only журнал)
func (r *Repository) InsertUsage(ctx context.Context, couponID, bookingID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupon_usages").
		Columns("coupon_id", "booking_id", "user_id").
		Values(couponID, bookingID, userID).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertUsage - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertUsage - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// UsageExistsForUser проверяет, использовал ли пользователь купон ранее.
// Применяется для купонов с max_uses = 1 ("один раз на пользователя").
func (r *Repository) UsageExistsForUser(ctx context.Context, couponID, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("coupon_usages").
		Where(squirrel.Eq{"coupon_id": couponID}).
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UsageExistsForUser - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: UsageExistsForUser - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Create создает новый купон (админка)
func (r *Repository) Create(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupons").
		Columns(
			"salon_id",
			"code",
			"discount_type",
			"discount_value",
			"max_uses",
			"current_uses",
			"active",
			"expires_at",
		).
		Values(
			coupon.SalonID,
			coupon.Code,
			coupon.DiscountType,
			coupon.DiscountValue,
			coupon.MaxUses,
			coupon.CurrentUses,
			coupon.Active,
			coupon.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&coupon.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return coupon, nil
}

// ListBySalon получает все купоны салона (админка)
func (r *Repository) ListBySalon(ctx context.Context, salonID int64) ([]*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(couponColumns...).
		From("coupons").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	coupons := make([]*domain.Coupon, 0)
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %v", ErrScanRow, err)
		}
		coupons = append(coupons, coupon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %v", ErrScanRow, err)
	}

	return coupons, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&coupon.ID,
		&coupon.SalonID,
		&coupon.Code,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MaxUses,
		&coupon.CurrentUses,
		&coupon.Active,
		&coupon.ExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return &coupon, nil
}
