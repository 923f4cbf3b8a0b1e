package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда рабочее окно не найдено
	ErrWindowNotFound = errors.New("schedule.repository: window not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrInvalidWeekdays возвращается при некорректном списке дней недели в строке БД
	ErrInvalidWeekdays = errors.New("schedule.repository: invalid weekdays value")
)
