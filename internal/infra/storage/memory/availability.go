package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/availability"
)

type templateKey struct {
	doctorID int64
	day      domain.DayOfWeek
}

// AvailabilityRepository хранит шаблоны доступности в памяти процесса
type AvailabilityRepository struct {
	mu        sync.RWMutex
	nextID    int64
	templates map[templateKey]domain.AvailabilityTemplate
}

// NewAvailabilityRepository создает пустое хранилище шаблонов
func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{
		templates: make(map[templateKey]domain.AvailabilityTemplate),
	}
}

// Upsert создает шаблон или заменяет существующий на тот же день
func (r *AvailabilityRepository) Upsert(_ context.Context, tpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	key := templateKey{doctorID: tpl.DoctorID, day: tpl.DayOfWeek}

	stored := *tpl
	stored.IsActive = true
	stored.UpdatedAt = now

	if existing, ok := r.templates[key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		stored.ID = r.nextID
		stored.CreatedAt = now
	}

	r.templates[key] = stored

	*tpl = stored
	return tpl, nil
}

// GetByDoctor возвращает активные шаблоны врача с понедельника по воскресенье
func (r *AvailabilityRepository) GetByDoctor(_ context.Context, doctorID int64) ([]*domain.AvailabilityTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.AvailabilityTemplate, 0)
	for key, tpl := range r.templates {
		if key.doctorID != doctorID || !tpl.IsActive {
			continue
		}
		copied := tpl
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DayOfWeek.Index() < result[j].DayOfWeek.Index()
	})

	return result, nil
}

// GetByDoctorAndDay возвращает активный шаблон или availability.ErrTemplateNotFound
func (r *AvailabilityRepository) GetByDoctorAndDay(_ context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[templateKey{doctorID: doctorID, day: day}]
	if !ok || !tpl.IsActive {
		return nil, availability.ErrTemplateNotFound
	}

	return &tpl, nil
}

// GetActiveDays возвращает дни с активным шаблоном
func (r *AvailabilityRepository) GetActiveDays(ctx context.Context, doctorID int64) ([]domain.DayOfWeek, error) {
	templates, err := r.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	days := make([]domain.DayOfWeek, 0, len(templates))
	for _, tpl := range templates {
		days = append(days, tpl.DayOfWeek)
	}

	return days, nil
}

// Deactivate помечает шаблон неактивным
func (r *AvailabilityRepository) Deactivate(_ context.Context, doctorID int64, day domain.DayOfWeek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := templateKey{doctorID: doctorID, day: day}
	tpl, ok := r.templates[key]
	if !ok || !tpl.IsActive {
		return availability.ErrTemplateNotFound
	}

	tpl.IsActive = false
	tpl.UpdatedAt = time.Now()
	r.templates[key] = tpl

	return nil
}
