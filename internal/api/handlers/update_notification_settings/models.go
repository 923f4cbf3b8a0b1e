package update_notification_settings

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency"` // daily
	SendTime  string `json:"sendTime"`  // "09:00"
}
