package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	availabilityRepo "github.com/m04kA/clinic-scheduling-service/internal/infra/storage/availability"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
)

// Service сервис шаблонов доступности врачей
type Service struct {
	repo      Repository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo Repository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// SetTemplates заменяет шаблоны врача на переданные дни недели
// Пакет применяется целиком или не применяется вовсе, остальные дни не меняются
func (s *Service) SetTemplates(ctx context.Context, doctorID int64, inputs []models.TemplateInput) ([]*models.TemplateResponse, error) {
	s.logger.Info("SetTemplates: doctor=%d, days=%d", doctorID, len(inputs))

	// 1. Валидация всего пакета до любой записи
	if len(inputs) == 0 {
		s.logger.Warn("SetTemplates: empty batch for doctor=%d", doctorID)
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidTemplate)
	}

	templates := make([]*domain.AvailabilityTemplate, 0, len(inputs))
	seen := make(map[domain.DayOfWeek]struct{}, len(inputs))
	for _, in := range inputs {
		tpl := in.ToDomain(doctorID)
		if err := tpl.Validate(); err != nil {
			s.logger.Warn("SetTemplates: invalid template for doctor=%d, day=%s: %v", doctorID, in.DayOfWeek, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		if _, dup := seen[tpl.DayOfWeek]; dup {
			s.logger.Warn("SetTemplates: duplicate day=%s for doctor=%d", tpl.DayOfWeek, doctorID)
			return nil, fmt.Errorf("%w: day %s is listed twice", ErrInvalidTemplate, tpl.DayOfWeek)
		}
		seen[tpl.DayOfWeek] = struct{}{}
		templates = append(templates, tpl)
	}

	// 2. Сохраняем все дни в одной транзакции
	saved := make([]*domain.AvailabilityTemplate, 0, len(templates))
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, tpl := range templates {
			stored, err := s.repo.Upsert(txCtx, tpl)
			if err != nil {
				return err
			}
			saved = append(saved, stored)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetTemplates: failed to save templates for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: SetTemplates - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("SetTemplates: saved %d templates for doctor=%d", len(saved), doctorID)
	return models.FromDomainTemplateList(saved), nil
}

// GetTemplates получает активные шаблоны врача с понедельника по воскресенье
func (s *Service) GetTemplates(ctx context.Context, doctorID int64) ([]*models.TemplateResponse, error) {
	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	templates, err := s.repo.GetByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetTemplates: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetTemplates - repository error: %v", ErrStorageUnavailable, err)
	}

	return models.FromDomainTemplateList(templates), nil
}

// GetTemplate получает активный шаблон врача на день недели
func (s *Service) GetTemplate(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityTemplate, error) {
	tpl, err := s.repo.GetByDoctorAndDay(ctx, doctorID, day)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotConfigured
		}
		s.logger.Error("GetTemplate: repository error for doctor=%d, day=%s: %v", doctorID, day, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrStorageUnavailable, err)
	}

	return tpl, nil
}

// GetConfiguredDays получает дни недели, на которые у врача есть шаблон
func (s *Service) GetConfiguredDays(ctx context.Context, doctorID int64) ([]domain.DayOfWeek, error) {
	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	days, err := s.repo.GetActiveDays(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetConfiguredDays: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetConfiguredDays - repository error: %v", ErrStorageUnavailable, err)
	}

	return days, nil
}

// DeactivateDay снимает шаблон врача на день недели
// Существующие записи на этот день не затрагиваются
func (s *Service) DeactivateDay(ctx context.Context, doctorID int64, day domain.DayOfWeek) error {
	s.logger.Info("DeactivateDay: doctor=%d, day=%s", doctorID, day)

	if doctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if !day.IsValid() {
		return fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, day)
	}

	if err := s.repo.Deactivate(ctx, doctorID, day); err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			s.logger.Warn("DeactivateDay: no active template for doctor=%d, day=%s", doctorID, day)
			return ErrTemplateNotConfigured
		}
		s.logger.Error("DeactivateDay: repository error for doctor=%d, day=%s: %v", doctorID, day, err)
		return fmt.Errorf("%w: DeactivateDay - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("DeactivateDay: template deactivated for doctor=%d, day=%s", doctorID, day)
	return nil
}
