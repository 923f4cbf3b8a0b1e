package domain

// SlotStatus classifies a candidate (service, date, time) slot
type SlotStatus string

const (
	SlotAvailable           SlotStatus = "available"
	SlotOutsideWorkingHours SlotStatus = "outside_working_hours"
	SlotAtCapacity          SlotStatus = "at_capacity"
	SlotUnknownService      SlotStatus = "unknown_service"
)

// IsBookable returns true if a reservation may be committed for the slot
func (s SlotStatus) IsBookable() bool {
	return s == SlotAvailable
}
