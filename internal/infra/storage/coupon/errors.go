package coupon

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("coupon.repository: coupon not found")

	// ErrStaleUsage возвращается, когда условное обновление счетчика
	// использований не затронуло ни одной строки: конкурирующее применение
	// купона успело изменить current_uses между чтением и записью
	ErrStaleUsage = errors.New("coupon.repository: stale usage counter")

	// ErrDuplicateCode возвращается при попытке создать купон с существующим кодом
	ErrDuplicateCode = errors.New("coupon.repository: duplicate coupon code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("coupon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("coupon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("coupon.repository: failed to scan row")
)
