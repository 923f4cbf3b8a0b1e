package domain

import "time"

// Month is a calendar month key (year + month) for metrics breakdowns
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing the given date
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the following calendar month
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// After reports whether m is after other
func (m Month) After(other Month) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

// String returns "YYYY-MM"
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// MonthlyMetrics aggregate for a single calendar month
type MonthlyMetrics struct {
	Month        Month
	Reservations int
	Revenue      float64
}

// CompanyMetrics derived rollup over the reservation ledger.
// Not persisted - computed on demand.
type CompanyMetrics struct {
	CompanyID int64
	StartDate time.Time
	EndDate   time.Time

	TotalReservations int
	TotalRevenue      float64
	UniqueClients     int

	// Одна запись на каждый месяц диапазона, включая нулевые
	Monthly []MonthlyMetrics
}
