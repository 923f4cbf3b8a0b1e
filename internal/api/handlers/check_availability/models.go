package check_availability

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	checkAvailability "github.com/agendahub/AGH-BookingService/internal/usecase/check_availability"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Status        string `json:"status"` // available, outside_working_hours, at_capacity, unknown_service
	CapacityLimit int    `json:"capacityLimit,omitempty"`
	ActiveCount   int    `json:"activeCount,omitempty"`
}

// toUseCaseRequest собирает запрос use case из query параметров
func toUseCaseRequest(companyID, serviceID int64, rawDate, rawTime string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(rawTime)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		CompanyID: companyID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// fromUseCaseResponse конвертирует ответ use case в HTTP response
func fromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Status:        string(resp.Status),
		CapacityLimit: resp.CapacityLimit,
		ActiveCount:   resp.ActiveCount,
	}
}
