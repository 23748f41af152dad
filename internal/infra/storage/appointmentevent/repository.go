package appointmentevent

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/dbmetrics"
	"github.com/m04kA/clinic-scheduling-service/pkg/psqlbuilder"
)

const tableName = "appointment_events"

// Repository журнал изменений статусов записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет событие в журнал
func (r *Repository) Append(ctx context.Context, event *domain.AppointmentEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var fromStatus *string
	if event.FromStatus != nil {
		s := string(*event.FromStatus)
		fromStatus = &s
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("appointment_id", "from_status", "to_status", "actor_id", "reason").
		Values(event.AppointmentID, fromStatus, string(event.ToStatus), event.ActorID, event.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByAppointment получает историю записи в порядке появления
func (r *Repository) GetByAppointment(ctx context.Context, appointmentID int64) ([]*domain.AppointmentEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "appointment_id", "from_status", "to_status", "actor_id", "reason", "created_at").
		From(tableName).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.AppointmentEvent, 0)
	for rows.Next() {
		var (
			event      domain.AppointmentEvent
			fromStatus sql.NullString
			toStatus   string
			reason     sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.AppointmentID, &fromStatus, &toStatus, &event.ActorID, &reason, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByAppointment - scan row: %v", ErrScanRow, err)
		}

		if fromStatus.Valid {
			s := domain.AppointmentStatus(fromStatus.String)
			event.FromStatus = &s
		}
		event.ToStatus = domain.AppointmentStatus(toStatus)
		if reason.Valid {
			event.Reason = &reason.String
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
