package get_company_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/internal/service/reservations/models"
)

// parseQuery собирает запрос сервиса из query параметров
// Поддерживаются фильтры: serviceId, clientId, startDate, endDate,
// status, includeInactive
func parseQuery(query url.Values, companyID, userID int64) (*models.GetCompanyReservationsRequest, error) {
	req := &models.GetCompanyReservationsRequest{
		UserID:    userID,
		CompanyID: companyID,
	}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if raw := query.Get("clientId"); raw != "" {
		clientID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ClientID = &clientID
	}

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

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
