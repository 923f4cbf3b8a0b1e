package domain

import "time"

// PersonRole distinguishes clients from company proprietors.
// Both share the same person shape and live in one table with a role tag.
type PersonRole string

const (
	RoleClient     PersonRole = "client"
	RoleProprietor PersonRole = "proprietor"
)

// Company represents a small business publishing services and working hours
type Company struct {
	ID           int64
	Name         string
	FiscalID     string // уникален и неизменяем после создания
	Email        string
	Phone        string
	ProprietorID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents a bookable service offered by exactly one company
type Service struct {
	ID              int64
	CompanyID       int64
	Name            string
	DurationMinutes int
	Price           float64
	CapacityLimit   int // максимум одновременных активных бронирований на дату

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidCapacity returns true if the capacity limit is within bounds
func (s *Service) HasValidCapacity() bool {
	return s.CapacityLimit >= MinCapacityLimit && s.CapacityLimit <= MaxCapacityLimit
}

// Client represents a person: a booking client or a company proprietor
type Client struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         PersonRole

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsProprietor returns true for company owners
func (c *Client) IsProprietor() bool {
	return c.Role == RoleProprietor
}
