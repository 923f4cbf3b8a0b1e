package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/dbmetrics"
	"github.com/agendahub/AGH-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Создание с проверкой вместимости слота обязано выполняться в
// сериализуемой транзакции (см. usecase create_reservation).
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"company_id",
			"client_id",
			"service_id",
			"reservation_date",
			"start_time",
			"status",
			"service_name",
			"service_price",
			"notes",
		).
		Values(
			reservation.CompanyID,
			reservation.ClientID,
			reservation.ServiceID,
			reservation.Date,
			reservation.StartTime,
			reservation.Status,
			reservation.ServiceName,
			reservation.ServicePrice,
			reservation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := reservationColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	reservation, err := scanReservationRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// ListByClient получает бронирования клиента, опционально по статусу
func (r *Repository) ListByClient(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := reservationColumns().
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("reservation_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByCompany получает бронирования компании с гибкой фильтрацией
// (услуга, клиент, период, статус, включение отменённых)
func (r *Repository) ListByCompany(ctx context.Context, filter domain.CompanyReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := reservationColumns().
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountForServiceAndDate подсчитывает активные (pending/confirmed)
// бронирования услуги на дату
//
// Внутри транзакции строки блокируются через FOR UPDATE - это часть
// check-then-commit дисциплины создания бронирования: конкурирующие
// создания на ту же (услугу, дату) сериализуются
func (r *Repository) CountForServiceAndDate(ctx context.Context, serviceID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	active := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		active[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id").
		From("reservations").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.Eq{"status": active})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountForServiceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountForServiceAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountForServiceAndDate - scan id: %v", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountForServiceAndDate - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет дату, время, статус и заметки бронирования
// cancelled_at пишется как есть: для активных бронирований он NULL,
// при отмене через изменение статуса - момент отмены
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reservation_date", reservation.Date).
		Set("start_time", reservation.StartTime).
		Set("status", reservation.Status).
		Set("notes", reservation.Notes).
		Set("cancelled_at", reservation.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ListDueReminders получает подтверждённые бронирования с датой в окне
// [from, to], по которым напоминание ещё не отправлялось
// Внутри транзакции строки блокируются через FOR UPDATE, чтобы два
// параллельных прохода не забрали одно и то же бронирование
func (r *Repository) ListDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := reservationColumns().
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Eq{"reminder_sent_at": nil}).
		Where(squirrel.GtOrEq{"reservation_date": from}).
		Where(squirrel.LtOrEq{"reservation_date": to}).
		OrderBy("reservation_date ASC, start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// MarkReminderSent помечает бронирование как получившее напоминание
// Возвращает false, если напоминание уже было отправлено ранее
// (условие по reminder_sent_at IS NULL делает операцию идемпотентной)
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reminder_sent_at", sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"reminder_sent_at": nil}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// MonthlyAggregate строка помесячной агрегации из БД
type MonthlyAggregate struct {
	Year         int
	Month        int
	Reservations int
	Revenue      float64
}

// AggregateMonthly агрегирует неотменённые бронирования компании за период
// по календарным месяцам. Месяцы без бронирований в выборку не попадают -
// нулевые записи дополняет usecase.
func (r *Repository) AggregateMonthly(ctx context.Context, companyID int64, from, to time.Time) ([]MonthlyAggregate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	active := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		active[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"EXTRACT(YEAR FROM reservation_date)::int AS year",
		"EXTRACT(MONTH FROM reservation_date)::int AS month",
		"COUNT(*) AS reservations",
		"COALESCE(SUM(service_price), 0) AS revenue",
	).
		From("reservations").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"status": active}).
		Where(squirrel.GtOrEq{"reservation_date": from}).
		Where(squirrel.LtOrEq{"reservation_date": to}).
		GroupBy("year", "month").
		OrderBy("year ASC", "month ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AggregateMonthly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateMonthly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	aggregates := make([]MonthlyAggregate, 0)
	for rows.Next() {
		var agg MonthlyAggregate
		if err := rows.Scan(&agg.Year, &agg.Month, &agg.Reservations, &agg.Revenue); err != nil {
			return nil, fmt.Errorf("%w: AggregateMonthly - scan row: %v", ErrScanRow, err)
		}
		aggregates = append(aggregates, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AggregateMonthly - rows error: %v", ErrScanRow, err)
	}

	return aggregates, nil
}

// CountDistinctClients подсчитывает уникальных клиентов компании за период
// (по неотменённым бронированиям)
func (r *Repository) CountDistinctClients(ctx context.Context, companyID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	active := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		active[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT client_id)").
		From("reservations").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"status": active}).
		Where(squirrel.GtOrEq{"reservation_date": from}).
		Where(squirrel.LtOrEq{"reservation_date": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountDistinctClients - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountDistinctClients - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteByClient удаляет все бронирования клиента (явный каскад)
func (r *Repository) DeleteByClient(ctx context.Context, clientID int64) error {
	return r.deleteWhere(ctx, "DeleteByClient", squirrel.Eq{"client_id": clientID})
}

// DeleteByCompany удаляет все бронирования компании (явный каскад)
func (r *Repository) DeleteByCompany(ctx context.Context, companyID int64) error {
	return r.deleteWhere(ctx, "DeleteByCompany", squirrel.Eq{"company_id": companyID})
}

func (r *Repository) deleteWhere(ctx context.Context, op string, pred interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(pred).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	return nil
}

func reservationColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"company_id",
		"client_id",
		"service_id",
		"reservation_date",
		"start_time",
		"status",
		"service_name",
		"service_price",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"reminder_sent_at",
		"created_at",
		"updated_at",
	).From("reservations")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservationRow(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.CompanyID,
		&reservation.ClientID,
		&reservation.ServiceID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.Status,
		&reservation.ServiceName,
		&reservation.ServicePrice,
		&reservation.Notes,
		&reservation.CancellationReason,
		&reservation.CancelledAt,
		&reservation.ReminderSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
