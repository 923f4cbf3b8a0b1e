package create_service

// CreateServiceRequest тело запроса на создание услуги
// Пустой capacityLimit означает лимит по умолчанию (1)
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	CapacityLimit   *int    `json:"capacityLimit,omitempty"`
}
