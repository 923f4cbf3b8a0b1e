package create_schedule_window

// CreateWindowRequest HTTP request model
// Пустой serviceId создает общее окно компании
type CreateWindowRequest struct {
	ServiceID *int64   `json:"serviceId,omitempty"`
	Weekdays  []string `json:"weekdays"`  // ["mon", "tue"]
	StartTime string   `json:"startTime"` // "08:00"
	EndTime   string   `json:"endTime"`   // "12:00"
}
