package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/dbmetrics"
	"github.com/m04kA/clinic-scheduling-service/pkg/psqlbuilder"
)

const tableName = "availability_templates"

var templateColumns = []string{
	"id",
	"doctor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"break_start",
	"break_end",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий шаблонов доступности врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает шаблон или заменяет существующий для пары (doctor_id, day_of_week)
// Замененный шаблон снова становится активным
func (r *Repository) Upsert(ctx context.Context, tpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"doctor_id",
			"day_of_week",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"break_start",
			"break_end",
			"is_active",
		).
		Values(
			tpl.DoctorID,
			string(tpl.DayOfWeek),
			tpl.StartTime,
			tpl.EndTime,
			tpl.SlotDurationMinutes,
			tpl.BreakStart,
			tpl.BreakEnd,
			true,
		).
		Suffix(`ON CONFLICT (doctor_id, day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			is_active = TRUE,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tpl.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	tpl.IsActive = true
	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return tpl, nil
}

// GetByDoctor получает активные шаблоны врача, упорядоченные с понедельника по воскресенье
func (r *Repository) GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates, err := r.scanTemplates(rows)
	if err != nil {
		return nil, err
	}

	// day_of_week хранится строкой, поэтому порядок дней задаем здесь
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].DayOfWeek.Index() < templates[j].DayOfWeek.Index()
	})

	return templates, nil
}

// GetByDoctorAndDay получает активный шаблон врача на день недели
func (r *Repository) GetByDoctorAndDay(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"doctor_id":   doctorID,
			"day_of_week": string(day),
			"is_active":   true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorAndDay - build select query: %v", ErrBuildQuery, err)
	}

	var tpl domain.AvailabilityTemplate
	err = r.scanTemplate(executor.QueryRowContext(ctx, query, args...), &tpl)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorAndDay - scan template: %v", ErrScanRow, err)
	}

	return &tpl, nil
}

// GetActiveDays получает дни недели, на которые у врача есть активный шаблон
func (r *Repository) GetActiveDays(ctx context.Context, doctorID int64) ([]domain.DayOfWeek, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week").
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.DayOfWeek, 0, len(domain.Weekdays))
	for rows.Next() {
		var day domain.DayOfWeek
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: GetActiveDays - scan day: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveDays - rows error: %v", ErrScanRow, err)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Index() < days[j].Index()
	})

	return days, nil
}

// Deactivate помечает шаблон неактивным (мягкое удаление)
func (r *Repository) Deactivate(ctx context.Context, doctorID int64, day domain.DayOfWeek) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"doctor_id":   doctorID,
			"day_of_week": string(day),
			"is_active":   true,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTemplate(row rowScanner, tpl *domain.AvailabilityTemplate) error {
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&tpl.ID,
		&tpl.DoctorID,
		&tpl.DayOfWeek,
		&tpl.StartTime,
		&tpl.EndTime,
		&tpl.SlotDurationMinutes,
		&tpl.BreakStart,
		&tpl.BreakEnd,
		&tpl.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return nil
}

// scanTemplates сканирует результаты запроса в слайс шаблонов
func (r *Repository) scanTemplates(rows *sql.Rows) ([]*domain.AvailabilityTemplate, error) {
	templates := make([]*domain.AvailabilityTemplate, 0)

	for rows.Next() {
		var tpl domain.AvailabilityTemplate
		if err := r.scanTemplate(rows, &tpl); err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}
