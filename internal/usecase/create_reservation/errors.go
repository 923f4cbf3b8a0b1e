package create_reservation

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_reservation: company not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_reservation: client not found")

	// ErrOutsideWorkingHours возвращается, когда время вне рабочих окон
	ErrOutsideWorkingHours = errors.New("create_reservation: time is outside working hours")

	// ErrSlotNotAvailable возвращается, когда все места на слот заняты
	// или конфликт при коммите не удалось разрешить за отведённые попытки
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidStatus возвращается при недопустимом начальном статусе
	ErrInvalidStatus = errors.New("create_reservation: invalid initial status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
