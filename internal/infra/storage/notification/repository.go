package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/dbmetrics"
	"github.com/agendahub/AGH-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с уведомлениями и настройками рассылки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает уведомление
// created_at выставляется базой и далее неизменяем
func (r *Repository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("client_id", "proprietor_id", "message", "type", "reservation_id").
		Values(
			notification.ClientID,
			notification.ProprietorID,
			notification.Message,
			notification.Type,
			notification.ReservationID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&notification.ID, &createdAt)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	notification.CreatedAt = createdAt.Time

	return notification, nil
}

// ListByClient получает уведомления клиента, новые первыми
func (r *Repository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Notification, error) {
	return r.list(ctx, "ListByClient", squirrel.Eq{"client_id": clientID})
}

// ListByProprietor получает уведомления владельца, новые первыми
func (r *Repository) ListByProprietor(ctx context.Context, proprietorID int64) ([]*domain.Notification, error) {
	return r.list(ctx, "ListByProprietor", squirrel.Eq{"proprietor_id": proprietorID})
}

// GetSettings получает настройки рассылки компании
func (r *Repository) GetSettings(ctx context.Context, companyID int64) (*domain.NotificationSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"company_id", "enabled", "frequency", "send_time", "created_at", "updated_at",
	).
		From("notification_settings").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.NotificationSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.CompanyID,
		&settings.Enabled,
		&settings.Frequency,
		&settings.SendTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// UpsertSettings создает или обновляет настройки рассылки компании
func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_settings").
		Columns("company_id", "enabled", "frequency", "send_time").
		Values(settings.CompanyID, settings.Enabled, settings.Frequency, settings.SendTime).
		Suffix(`ON CONFLICT (company_id) DO UPDATE
			SET enabled = EXCLUDED.enabled,
			    frequency = EXCLUDED.frequency,
			    send_time = EXCLUDED.send_time,
			    updated_at = NOW()
			RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

func (r *Repository) list(ctx context.Context, op string, pred interface{}) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "client_id", "proprietor_id", "message", "type", "reservation_id", "created_at",
	).
		From("notifications").
		Where(pred).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var createdAt sql.NullTime

		err := rows.Scan(
			&n.ID,
			&n.ClientID,
			&n.ProprietorID,
			&n.Message,
			&n.Type,
			&n.ReservationID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		n.CreatedAt = createdAt.Time
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return notifications, nil
}
