package get_company_metrics

import (
	"net/url"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	computeMetrics "github.com/agendahub/AGH-BookingService/internal/usecase/compute_metrics"
)

// MetricsResponse HTTP response model
type MetricsResponse struct {
	CompanyID int64  `json:"companyId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	TotalReservations int     `json:"totalReservations"`
	TotalRevenue      float64 `json:"totalRevenue"`
	UniqueClients     int     `json:"uniqueClients"`

	Monthly []MonthlyRow `json:"monthly"`
}

// MonthlyRow метрики одного месяца
type MonthlyRow struct {
	Month        string  `json:"month"` // "2026-03"
	Reservations int     `json:"reservations"`
	Revenue      float64 `json:"revenue"`
}

// parseQuery собирает запрос use case из query параметров
// Отсутствующие даты заполняет сам use case
func parseQuery(query url.Values, companyID int64) (*computeMetrics.Request, error) {
	req := &computeMetrics.Request{CompanyID: companyID}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}

// fromUseCaseResponse конвертирует ответ use case в HTTP response
func fromUseCaseResponse(resp *computeMetrics.Response) *MetricsResponse {
	monthly := make([]MonthlyRow, 0, len(resp.Monthly))
	for _, row := range resp.Monthly {
		monthly = append(monthly, MonthlyRow{
			Month:        row.Month,
			Reservations: row.Reservations,
			Revenue:      row.Revenue,
		})
	}

	return &MetricsResponse{
		CompanyID:         resp.CompanyID,
		StartDate:         resp.StartDate.Format(domain.DateFormat),
		EndDate:           resp.EndDate.Format(domain.DateFormat),
		TotalReservations: resp.TotalReservations,
		TotalRevenue:      resp.TotalRevenue,
		UniqueClients:     resp.UniqueClients,
		Monthly:           monthly,
	}
}
