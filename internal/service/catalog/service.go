package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	"github.com/agendahub/AGH-BookingService/internal/service/catalog/models"
)

// Минимальная длина пароля при регистрации
const minPasswordLength = 8

// Service сервис для работы с каталогом: компании, услуги, клиенты
type Service struct {
	catalogRepo  CatalogRepository
	reservations ReservationCascader
	schedules    ScheduleCascader
	hasher       PasswordHasher
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	reservations ReservationCascader,
	schedules ScheduleCascader,
	hasher PasswordHasher,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		reservations: reservations,
		schedules:    schedules,
		hasher:       hasher,
		logger:       logger,
	}
}

// CreateCompany регистрирует компанию с уникальным фискальным номером
func (s *Service) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.CompanyResponse, error) {
	s.logger.Info("CreateCompany: creating company fiscal_id=%s by user=%d", req.FiscalID, req.UserID)

	if err := validateCompanyRequest(req); err != nil {
		s.logger.Warn("CreateCompany: validation failed: %v", err)
		return nil, err
	}

	// Регистрирующий пользователь становится владельцем и должен существовать
	owner, err := s.getClient(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !owner.IsProprietor() {
		s.logger.Warn("CreateCompany: user=%d is not registered as a proprietor", req.UserID)
		return nil, ErrAccessDenied
	}

	created, err := s.catalogRepo.CreateCompany(ctx, &domain.Company{
		Name:         strings.TrimSpace(req.Name),
		FiscalID:     strings.TrimSpace(req.FiscalID),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		ProprietorID: req.UserID,
	})
	if err != nil {
		if errors.Is(err, companyRepo.ErrDuplicateFiscalID) {
			s.logger.Warn("CreateCompany: fiscal_id=%s already registered", req.FiscalID)
			return nil, ErrDuplicateFiscalID
		}
		s.logger.Error("CreateCompany: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCompany: created company id=%d", created.ID)
	return models.FromDomainCompany(created), nil
}

// GetCompany получает компанию по ID
func (s *Service) GetCompany(ctx context.Context, companyID int64) (*models.CompanyResponse, error) {
	company, err := s.getCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCompany(company), nil
}

// UpdateCompany обновляет контактные данные компании
// Доступно только владельцу; фискальный номер неизменяем
func (s *Service) UpdateCompany(ctx context.Context, req *models.UpdateCompanyRequest) (*models.CompanyResponse, error) {
	s.logger.Info("UpdateCompany: updating company=%d by user=%d", req.CompanyID, req.UserID)

	company, err := s.getCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.ProprietorID != req.UserID {
		s.logger.Warn("UpdateCompany: user=%d is not the proprietor of company=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > domain.MaxNameLength {
			return nil, fmt.Errorf("%w: invalid company name", ErrInvalidInput)
		}
		company.Name = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !isValidEmail(email) {
			return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
		company.Email = email
	}
	if req.Phone != nil {
		company.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.catalogRepo.UpdateCompany(ctx, company); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("UpdateCompany: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: UpdateCompany - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateCompany: updated company id=%d", updated.ID)
	return models.FromDomainCompany(updated), nil
}

// DeleteCompany удаляет компанию со всеми её данными
// Бронирования и рабочие окна каскадируются явно перед удалением записи
func (s *Service) DeleteCompany(ctx context.Context, req *models.DeleteCompanyRequest) error {
	s.logger.Info("DeleteCompany: deleting company=%d by user=%d", req.CompanyID, req.UserID)

	company, err := s.getCompany(ctx, req.CompanyID)
	if err != nil {
		return err
	}
	if company.ProprietorID != req.UserID {
		s.logger.Warn("DeleteCompany: user=%d is not the proprietor of company=%d", req.UserID, req.CompanyID)
		return ErrAccessDenied
	}

	if err := s.reservations.DeleteByCompany(ctx, req.CompanyID); err != nil {
		s.logger.Error("DeleteCompany: failed to cascade reservations for company=%d: %v", req.CompanyID, err)
		return fmt.Errorf("%w: DeleteCompany - cascade reservations: %v", ErrInternal, err)
	}
	if err := s.schedules.DeleteByCompany(ctx, req.CompanyID); err != nil {
		s.logger.Error("DeleteCompany: failed to cascade schedule windows for company=%d: %v", req.CompanyID, err)
		return fmt.Errorf("%w: DeleteCompany - cascade schedule windows: %v", ErrInternal, err)
	}

	if err := s.catalogRepo.DeleteCompany(ctx, req.CompanyID); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return ErrCompanyNotFound
		}
		s.logger.Error("DeleteCompany: repository error for company=%d: %v", req.CompanyID, err)
		return fmt.Errorf("%w: DeleteCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteCompany: deleted company id=%d", req.CompanyID)
	return nil
}

// CreateService создает услугу компании
// Доступно только владельцу компании
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service for company=%d by user=%d", req.CompanyID, req.UserID)

	service, err := buildService(req)
	if err != nil {
		s.logger.Warn("CreateService: validation failed for company=%d: %v", req.CompanyID, err)
		return nil, err
	}

	company, err := s.getCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.ProprietorID != req.UserID {
		s.logger.Warn("CreateService: user=%d is not the proprietor of company=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}

	created, err := s.catalogRepo.CreateService(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d for company=%d", created.ID, created.CompanyID)
	return models.FromDomainService(created), nil
}

// ListServices получает услуги компании
func (s *Service) ListServices(ctx context.Context, companyID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services for company=%d", companyID)

	if _, err := s.getCompany(ctx, companyID); err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.ListServices(ctx, companyID)
	if err != nil {
		s.logger.Error("ListServices: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// DeleteService удаляет услугу и каскадно её бронирования
// Рабочие окна услуги чистятся на уровне FK
func (s *Service) DeleteService(ctx context.Context, req *models.DeleteServiceRequest) error {
	s.logger.Info("DeleteService: deleting service=%d by user=%d", req.ServiceID, req.UserID)

	service, err := s.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found", req.ServiceID)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service=%d: %v", req.ServiceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	company, err := s.getCompany(ctx, service.CompanyID)
	if err != nil {
		return err
	}
	if company.ProprietorID != req.UserID {
		s.logger.Warn("DeleteService: user=%d is not the proprietor of company=%d", req.UserID, service.CompanyID)
		return ErrAccessDenied
	}

	if err := s.catalogRepo.DeleteService(ctx, req.ServiceID); err != nil {
		if errors.Is(err, companyRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service=%d: %v", req.ServiceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: deleted service id=%d", req.ServiceID)
	return nil
}

// RegisterClient регистрирует клиента или владельца
// Пароль хэшируется через bcrypt; хэш наружу не отдается
func (s *Service) RegisterClient(ctx context.Context, req *models.RegisterClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("RegisterClient: registering client email=%s", req.Email)

	role, err := validateClientRequest(req)
	if err != nil {
		s.logger.Warn("RegisterClient: validation failed: %v", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("RegisterClient: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: RegisterClient - hash password: %v", ErrInternal, err)
	}

	created, err := s.catalogRepo.CreateClient(ctx, &domain.Client{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		s.logger.Error("RegisterClient: repository error: %v", err)
		return nil, fmt.Errorf("%w: RegisterClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RegisterClient: registered client id=%d role=%s", created.ID, created.Role)
	return models.FromDomainClient(created), nil
}

// DeleteClient удаляет клиента и каскадно его бронирования
// Доступно только самому клиенту
func (s *Service) DeleteClient(ctx context.Context, clientID, userID int64) error {
	s.logger.Info("DeleteClient: deleting client=%d by user=%d", clientID, userID)

	if clientID != userID {
		s.logger.Warn("DeleteClient: user=%d cannot delete client=%d", userID, clientID)
		return ErrAccessDenied
	}

	if _, err := s.getClient(ctx, clientID); err != nil {
		return err
	}

	if err := s.reservations.DeleteByClient(ctx, clientID); err != nil {
		s.logger.Error("DeleteClient: failed to cascade reservations for client=%d: %v", clientID, err)
		return fmt.Errorf("%w: DeleteClient - cascade reservations: %v", ErrInternal, err)
	}

	if err := s.catalogRepo.DeleteClient(ctx, clientID); err != nil {
		if errors.Is(err, companyRepo.ErrClientNotFound) {
			return ErrClientNotFound
		}
		s.logger.Error("DeleteClient: repository error for client=%d: %v", clientID, err)
		return fmt.Errorf("%w: DeleteClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteClient: deleted client id=%d", clientID)
	return nil
}

// Вспомогательные методы

func (s *Service) getCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	company, err := s.catalogRepo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("catalog: company id=%d not found", companyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("catalog: failed to get company id=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	return company, nil
}

func (s *Service) getClient(ctx context.Context, clientID int64) (*domain.Client, error) {
	client, err := s.catalogRepo.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrClientNotFound) {
			s.logger.Warn("catalog: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("catalog: failed to get client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	return client, nil
}

// Валидация

func validateCompanyRequest(req *models.CreateCompanyRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: company name is required and must not exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if strings.TrimSpace(req.FiscalID) == "" {
		return fmt.Errorf("%w: fiscalId is required", ErrInvalidInput)
	}
	if !isValidEmail(strings.TrimSpace(req.Email)) {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return nil
}

func buildService(req *models.CreateServiceRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: service name is required and must not exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	capacity := domain.DefaultCapacityLimit
	if req.CapacityLimit != nil {
		capacity = *req.CapacityLimit
	}

	service := &domain.Service{
		CompanyID:       req.CompanyID,
		Name:            name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		CapacityLimit:   capacity,
	}
	if !service.HasValidCapacity() {
		return nil, fmt.Errorf("%w: capacityLimit must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityLimit, domain.MaxCapacityLimit)
	}

	return service, nil
}

func validateClientRequest(req *models.RegisterClientRequest) (domain.PersonRole, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name is required and must not exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if !isValidEmail(strings.TrimSpace(req.Email)) {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	switch req.Role {
	case "", string(domain.RoleClient):
		return domain.RoleClient, nil
	case string(domain.RoleProprietor):
		return domain.RoleProprietor, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
}

// isValidEmail проверяет минимальную форму адреса: непустые локальная часть и домен
func isValidEmail(email string) bool {
	if email == "" || len(email) > domain.MaxNameLength {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.Contains(email[at+1:], "@")
}
