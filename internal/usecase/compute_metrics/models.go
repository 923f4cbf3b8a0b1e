package compute_metrics

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// Request модель запроса на расчет метрик компании
// Пустые даты заменяются диапазоном по умолчанию: последние шесть
// календарных месяцев, включая текущий
type Request struct {
	CompanyID int64      // ID компании
	StartDate *time.Time // Начало диапазона (опционально)
	EndDate   *time.Time // Конец диапазона (опционально)
}

// Response модель ответа с агрегированными метриками
type Response struct {
	CompanyID int64     // ID компании
	StartDate time.Time // Фактическое начало диапазона
	EndDate   time.Time // Фактический конец диапазона

	TotalReservations int     // Всего активных бронирований за период
	TotalRevenue      float64 // Суммарная выручка за период
	UniqueClients     int     // Уникальных клиентов за период

	Monthly []MonthlyRow // По одной строке на каждый месяц диапазона
}

// MonthlyRow метрики одного календарного месяца
type MonthlyRow struct {
	Month        string  // "YYYY-MM"
	Reservations int     // Бронирований за месяц
	Revenue      float64 // Выручка за месяц
}

func fromDomain(m *domain.CompanyMetrics) *Response {
	monthly := make([]MonthlyRow, 0, len(m.Monthly))
	for _, row := range m.Monthly {
		monthly = append(monthly, MonthlyRow{
			Month:        row.Month.String(),
			Reservations: row.Reservations,
			Revenue:      row.Revenue,
		})
	}

	return &Response{
		CompanyID:         m.CompanyID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		TotalReservations: m.TotalReservations,
		TotalRevenue:      m.TotalRevenue,
		UniqueClients:     m.UniqueClients,
		Monthly:           monthly,
	}
}
