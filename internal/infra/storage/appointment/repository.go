package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/dbmetrics"
	"github.com/m04kA/clinic-scheduling-service/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	uniqueViolation = "23505"
	activeSlotIndex = "appointments_active_slot_uidx"

	localTimestampFormat = "2006-01-02 15:04:05"
)

var appointmentColumns = []string{
	"id",
	"doctor_id",
	"patient_id",
	"appointment_date",
	"slot_time",
	"duration_minutes",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Возвращает ErrSlotTaken, если на слот уже есть активная запись
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"doctor_id",
			"patient_id",
			"appointment_date",
			"slot_time",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			appt.DoctorID,
			appt.PatientID,
			appt.Date.Format(domain.DateFormat),
			appt.Slot,
			appt.DurationMinutes,
			string(appt.Status),
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isActiveSlotViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется до ее завершения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var appt domain.Appointment
	err = r.scanAppointment(executor.QueryRowContext(ctx, query, args...), &appt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return &appt, nil
}

// GetByFilter получает записи по фильтру, упорядоченные по дате и времени слота
func (r *Repository) GetByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From(tableName).
		OrderBy("appointment_date ASC", "slot_time ASC", "id ASC")

	if filter.DoctorID != nil {
		builder = builder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.PatientID != nil {
		builder = builder.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"appointment_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"appointment_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.ActiveOnly {
		active := make([]string, 0, len(domain.ActiveStatuses))
		for _, s := range domain.ActiveStatuses {
			active = append(active, string(s))
		}
		builder = builder.Where(squirrel.Eq{"status": active})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus переводит запись из статуса From в статус To
// Возвращает ErrStatusConflict, если текущий статус уже не равен From
func (r *Repository) UpdateStatus(ctx context.Context, upd StatusUpdate) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(tableName).
		Set("status", string(upd.To)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": upd.ID, "status": string(upd.From)})

	if upd.To == domain.StatusCancelled {
		builder = builder.
			Set("cancellation_reason", upd.Reason).
			Set("cancelled_by", upd.ActorID).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Отличаем отсутствующую запись от гонки по статусу
		if _, getErr := r.GetByID(ctx, upd.ID); errors.Is(getErr, ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, ErrStatusConflict
	}

	return r.GetByID(ctx, upd.ID)
}

// CompleteElapsed переводит подтвержденные записи, слот которых закончился к now, в COMPLETED
// Сравнение идет по настенному времени now, поэтому now должен быть в часовом поясе клиники
// Возвращает ID обновленных записей
func (r *Repository) CompleteElapsed(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(domain.StatusCompleted)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.Expr(
			"(appointment_date + slot_time + make_interval(mins => duration_minutes)) <= ?::timestamp",
			now.Format(localTimestampFormat),
		)).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CompleteElapsed - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteElapsed - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: CompleteElapsed - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CompleteElapsed - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func isActiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == activeSlotIndex
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner, appt *domain.Appointment) error {
	var (
		status               string
		notes, reason        sql.NullString
		cancelledBy          sql.NullInt64
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.DoctorID,
		&appt.PatientID,
		&appt.Date,
		&appt.Slot,
		&appt.DurationMinutes,
		&status,
		&notes,
		&reason,
		&cancelledBy,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	appt.Status = domain.AppointmentStatus(status)
	if notes.Valid {
		appt.Notes = &notes.String
	}
	if reason.Valid {
		appt.CancellationReason = &reason.String
	}
	if cancelledBy.Valid {
		appt.CancelledBy = &cancelledBy.Int64
	}
	if cancelledAt.Valid {
		appt.CancelledAt = &cancelledAt.Time
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		if err := r.scanAppointment(rows, &appt); err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
