package domain

// Default configuration values
const (
	DefaultCapacityLimit      = 1
	DefaultMetricsRangeMonths = 6
	DefaultReminderLeadHours  = 24
)

// Business validation constants
const (
	MinCapacityLimit            = 1
	MaxCapacityLimit            = 100
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNameLength               = 120
	MaxMessageLength            = 1000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, учитываемые при подсчёте занятости слота
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, не занимающие место в слоте
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}
