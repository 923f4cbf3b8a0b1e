package domain

import (
	"time"

	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// ScheduleWindow represents a recurring working-hours window for a company.
// ServiceID is nil for company-wide windows that apply to every service.
type ScheduleWindow struct {
	ID        int64
	CompanyID int64
	ServiceID *int64 // nil = window applies to all services of the company

	Weekdays  WeekdaySet
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompanyWide returns true if the window applies to all services
func (w *ScheduleWindow) IsCompanyWide() bool {
	return w.ServiceID == nil
}

// AppliesTo returns true if the window covers the given weekday
func (w *ScheduleWindow) AppliesTo(day time.Weekday) bool {
	return w.Weekdays.Contains(day)
}

// Contains returns true if t lies within [StartTime, EndTime).
// The end boundary is exclusive: a 08:00-12:00 window does not admit 12:00.
func (w *ScheduleWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.StartTime) && t.IsBefore(w.EndTime)
}

// Range returns the window interval as a TimeRange
func (w *ScheduleWindow) Range() TimeRange {
	return TimeRange{Start: w.StartTime, End: w.EndTime}
}

// TimeRange is a half-open time-of-day interval [Start, End)
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if Start is strictly before End
func (r TimeRange) IsValid() bool {
	return r.Start.IsBefore(r.End)
}

// Overlaps reports whether two half-open intervals intersect.
// Equal boundaries do not overlap: [08:00,12:00) and [12:00,16:00)
// are disjoint. The test is symmetric.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// ScheduleWindowsFilter фильтр для выборки рабочих окон
type ScheduleWindowsFilter struct {
	CompanyID       int64
	ServiceID       *int64        // nil - окна всех услуг вместе с общими
	OnlyCompanyWide bool          // только общие окна компании (service_id IS NULL)
	Weekday         *time.Weekday // nil - без фильтра по дню недели
}
