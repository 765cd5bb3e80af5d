package get_available_slots

import (
	"time"

	"github.com/salonhub/SalonBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID        int64     // ID салона
	ProfessionalID int64     // ID мастера
	ServiceIDs     []int64   // Выбранные услуги (одна или несколько)
	Date           time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           time.Time // Дата, на которую запрашивались слоты
	SalonID        int64     // ID салона
	ProfessionalID int64     // ID мастера
	ServiceIDs     []int64   // Выбранные услуги
	TotalMinutes   int       // Фактическая суммарная длительность услуг
	TotalPrice     float64   // Суммарная цена услуг без скидок
	Slots          []Slot    // Список доступных слотов, по возрастанию времени
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность предлагаемого блока в минутах
}
