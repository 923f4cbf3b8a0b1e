package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrReservationNotEditable возвращается при попытке изменить отмененное бронирование
	ErrReservationNotEditable = errors.New("update_reservation: reservation cannot be updated")

	// ErrInvalidStatusTransition возвращается при недопустимом переходе статуса
	ErrInvalidStatusTransition = errors.New("update_reservation: invalid status transition")

	// ErrOutsideWorkingHours возвращается, когда новое время вне рабочих окон
	ErrOutsideWorkingHours = errors.New("update_reservation: time is outside working hours")

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = errors.New("update_reservation: slot is not available")

	// ErrInvalidDate возвращается при новой дате бронирования в прошлом
	ErrInvalidDate = errors.New("update_reservation: invalid reservation date")

	// ErrAccessDenied возвращается при попытке изменить чужое бронирование
	ErrAccessDenied = errors.New("update_reservation: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
