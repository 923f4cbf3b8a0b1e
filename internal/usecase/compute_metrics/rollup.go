package compute_metrics

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
)

// buildMetrics раскладывает строки агрегации по календарным месяцам диапазона
// Месяцы без бронирований получают нулевые записи, чтобы графики на стороне
// клиента не содержали дыр
func buildMetrics(
	companyID int64,
	from, to time.Time,
	aggregates []reservationRepo.MonthlyAggregate,
	uniqueClients int,
) *domain.CompanyMetrics {
	byMonth := make(map[domain.Month]reservationRepo.MonthlyAggregate, len(aggregates))
	for _, agg := range aggregates {
		byMonth[domain.Month{Year: agg.Year, Month: time.Month(agg.Month)}] = agg
	}

	metrics := &domain.CompanyMetrics{
		CompanyID:     companyID,
		StartDate:     from,
		EndDate:       to,
		UniqueClients: uniqueClients,
	}

	last := domain.MonthOf(to)
	for month := domain.MonthOf(from); !month.After(last); month = month.Next() {
		row := domain.MonthlyMetrics{Month: month}
		if agg, ok := byMonth[month]; ok {
			row.Reservations = agg.Reservations
			row.Revenue = agg.Revenue
		}

		metrics.TotalReservations += row.Reservations
		metrics.TotalRevenue += row.Revenue
		metrics.Monthly = append(metrics.Monthly, row)
	}

	return metrics
}
