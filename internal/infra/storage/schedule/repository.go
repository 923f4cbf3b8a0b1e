package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/dbmetrics"
	"github.com/agendahub/AGH-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с рабочими окнами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих окон
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое рабочее окно
func (r *Repository) Create(ctx context.Context, window *domain.ScheduleWindow) (*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_windows").
		Columns(
			"company_id",
			"service_id",
			"weekdays",
			"start_time",
			"end_time",
		).
		Values(
			window.CompanyID,
			window.ServiceID,
			window.Weekdays.String(),
			window.StartTime,
			window.EndTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByID получает рабочее окно по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := windowColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	window, err := scanWindowRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// List получает рабочие окна по фильтру, упорядоченные по времени начала
// Фильтрация:
// - ServiceID задан: окна конкретной услуги
// - OnlyCompanyWide: только общие окна компании (service_id IS NULL)
// - Weekday задан: окна, действующие в этот день недели
func (r *Repository) List(ctx context.Context, filter domain.ScheduleWindowsFilter) ([]*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := windowColumns().
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.OnlyCompanyWide {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}

	// Теги дней недели трёхбуквенные и не являются подстроками друг друга,
	// поэтому фильтрация подстрокой по колонке weekdays корректна
	if filter.Weekday != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Like{"weekdays": "%" + domain.WeekdayTag(*filter.Weekday) + "%"},
		)
	}

	query, args, err := selectBuilder.
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// FindOrphans находит окна с потерянными ссылками: без существующей компании
// или со ссылкой на удалённую услугу. Появляются только при удалении записей
// в обход API (FK с каскадом такие строки обычно не оставляет).
func (r *Repository) FindOrphans(ctx context.Context) ([]*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"w.id",
		"w.company_id",
		"w.service_id",
		"w.weekdays",
		"w.start_time",
		"w.end_time",
		"w.created_at",
		"w.updated_at",
	).
		From("schedule_windows w").
		LeftJoin("companies c ON c.id = w.company_id").
		LeftJoin("services s ON s.id = w.service_id").
		Where(squirrel.Or{
			squirrel.Eq{"c.id": nil},
			squirrel.And{
				squirrel.NotEq{"w.service_id": nil},
				squirrel.Eq{"s.id": nil},
			},
		}).
		OrderBy("w.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOrphans - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrphans - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// Delete удаляет рабочее окно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// DeleteByCompany удаляет все окна компании
func (r *Repository) DeleteByCompany(ctx context.Context, companyID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_windows").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByCompany - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByCompany - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func windowColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"company_id",
		"service_id",
		"weekdays",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).From("schedule_windows")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindowRow(row rowScanner) (*domain.ScheduleWindow, error) {
	var window domain.ScheduleWindow
	var weekdays string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&window.ID,
		&window.CompanyID,
		&window.ServiceID,
		&weekdays,
		&window.StartTime,
		&window.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	set, err := domain.ParseWeekdaySet(weekdays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeekdays, err)
	}

	window.Weekdays = set
	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}

func scanWindows(rows *sql.Rows) ([]*domain.ScheduleWindow, error) {
	windows := make([]*domain.ScheduleWindow, 0)

	for rows.Next() {
		window, err := scanWindowRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
