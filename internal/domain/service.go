package domain

import "time"

// Service represents a bookable salon service
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	DurationMinutes int // > 0
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Professional represents a salon staff member clients book with
type Professional struct {
	ID        int64
	SalonID   int64
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientProfile is the cached name/phone of a client, updated on each booking
type ClientProfile struct {
	UserID    int64
	Name      string
	Phone     string
	UpdatedAt time.Time
}

// TotalDuration sums the durations of the given services
func TotalDuration(services []*Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

// TotalPrice sums the prices of the given services
func TotalPrice(services []*Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}
