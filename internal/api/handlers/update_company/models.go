package update_company

// UpdateCompanyRequest тело запроса на обновление контактных данных компании
// Отсутствующие поля не меняются; фискальный номер неизменяем
type UpdateCompanyRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
