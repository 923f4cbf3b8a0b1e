package domain

import (
	"time"

	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a client reservation for a company service
type Reservation struct {
	ID        int64
	CompanyID int64
	ClientID  int64
	ServiceID int64

	Date      time.Time
	StartTime types.TimeString
	Status    ReservationStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	// Set once the reminder sweep has emitted a reminder for this reservation
	ReminderSentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies a slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the reservation can transition to cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeUpdated returns true if date/time/status changes are allowed
func (r *Reservation) CanBeUpdated() bool {
	return r.Status != StatusCancelled
}

// CanTransitionTo validates the reservation state machine:
// pending -> confirmed -> cancelled, pending -> cancelled.
// Cancelled is terminal. Setting the same status again is a no-op transition.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	if r.Status == next {
		return true
	}
	switch r.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	case StatusCancelled:
		return false
	default:
		return false
	}
}

// NeedsReminder returns true if the reminder sweep still owes this
// reservation a reminder notification
func (r *Reservation) NeedsReminder() bool {
	return r.Status == StatusConfirmed && r.ReminderSentAt == nil
}

// CompanyReservationsFilter фильтр для получения бронирований компании
type CompanyReservationsFilter struct {
	CompanyID       int64              // Обязательный параметр
	ServiceID       *int64             // Фильтр по услуге (опционально)
	ClientID        *int64             // Фильтр по клиенту (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые бронирования
}
