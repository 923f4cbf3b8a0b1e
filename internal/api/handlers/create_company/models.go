package create_company

// CreateCompanyRequest тело запроса на регистрацию компании
type CreateCompanyRequest struct {
	Name     string `json:"name"`
	FiscalID string `json:"fiscalId"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}
