package models

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// Request модели

// CreateCompanyRequest запрос на регистрацию компании
type CreateCompanyRequest struct {
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	FiscalID string `json:"fiscalId"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// UpdateCompanyRequest запрос на обновление контактных данных компании
// Фискальный номер неизменяем и в запросе отсутствует
type UpdateCompanyRequest struct {
	UserID    int64   `json:"userId"`
	CompanyID int64   `json:"companyId"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// DeleteCompanyRequest запрос на удаление компании со всеми данными
type DeleteCompanyRequest struct {
	UserID    int64 `json:"userId"`
	CompanyID int64 `json:"companyId"`
}

// CreateServiceRequest запрос на создание услуги компании
type CreateServiceRequest struct {
	UserID          int64   `json:"userId"`
	CompanyID       int64   `json:"companyId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	CapacityLimit   *int    `json:"capacityLimit,omitempty"` // по умолчанию 1
}

// DeleteServiceRequest запрос на удаление услуги
type DeleteServiceRequest struct {
	UserID    int64 `json:"userId"`
	ServiceID int64 `json:"serviceId"`
}

// RegisterClientRequest запрос на регистрацию клиента или владельца
type RegisterClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // "client" (по умолчанию) или "proprietor"
}

// Response модели

// CompanyResponse ответ с данными компании
type CompanyResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FiscalID     string `json:"fiscalId"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	ProprietorID int64  `json:"proprietorId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	CompanyID       int64   `json:"companyId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	CapacityLimit   int     `json:"capacityLimit"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг компании
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ClientResponse ответ с данными клиента (без хэша пароля)
type ClientResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`

	CreatedAt time.Time `json:"createdAt"`
}

// Конвертация domain -> response

// FromDomainCompany конвертирует domain модель компании в ответ
func FromDomainCompany(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		FiscalID:     c.FiscalID,
		Email:        c.Email,
		Phone:        c.Phone,
		ProprietorID: c.ProprietorID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromDomainService конвертирует domain модель услуги в ответ
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		CompanyID:       s.CompanyID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		CapacityLimit:   s.CapacityLimit,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в ответ
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromDomainClient конвертирует domain модель клиента в ответ
func FromDomainClient(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Role:      string(c.Role),
		CreatedAt: c.CreatedAt,
	}
}
