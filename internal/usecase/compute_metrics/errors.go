package compute_metrics

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("compute_metrics: company not found")

	// ErrInvalidRange возвращается, когда начало диапазона позже конца
	ErrInvalidRange = errors.New("compute_metrics: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_metrics: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_metrics: internal error")
)
