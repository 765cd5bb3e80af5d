package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot computation constants
const (
	// ServiceBlockMinutes granularity the requested duration is rounded up to
	// before slot enumeration. Offered slots always span whole-hour blocks.
	ServiceBlockMinutes = 60
)

// Default work settings used when a salon has no configuration row yet
const (
	DefaultStartTime       = "09:00"
	DefaultEndTime         = "18:00"
	DefaultIntervalMinutes = 0
	DefaultSlotStepMinutes = 60
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MinIntervalMinutes          = 0
	MaxIntervalMinutes          = 120
	MaxCancellationReasonLength = 500
	MaxBlockedDateReasonLength  = 200
)

// UnlimitedUsesSentinel is the max_uses value at or above which a coupon
// is treated as having no usage cap.
const UnlimitedUsesSentinel = 999999
