package create_booking

import (
	"time"

	"github.com/salonhub/SalonBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SalonID        int64            // ID салона
	UserID         int64            // ID пользователя
	ProfessionalID int64            // ID мастера
	ServiceIDs     []int64          // Выбранные услуги (одна или несколько)
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	CouponCode     *string          // Промокод (опционально)
	ClientName     string           // Имя клиента
	ClientPhone    string           // Телефон клиента
}

// BookedService услуга в составе созданного бронирования
type BookedService struct {
	ServiceID       int64
	Name            string
	Price           float64
	DurationMinutes int
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	SalonID         int64            // ID салона
	UserID          int64            // ID пользователя
	ProfessionalID  int64            // ID мастера
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Фактическая суммарная длительность
	Status          string           // Статус бронирования

	Services []BookedService // Услуги в составе бронирования

	// Ценообразование
	Subtotal       float64 // Сумма услуг до скидки
	DiscountAmount float64 // Скидка по промокоду (0 без промокода)
	TotalPrice     float64 // Итоговая цена (авторитетная)
	CouponCode     *string // Примененный промокод

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
