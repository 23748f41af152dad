package set_availability

import (
	"context"
)

// UseCase use case для установки расписания врача на дни недели
type UseCase struct {
	templates TemplateService
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(templates TemplateService, logger Logger) *UseCase {
	return &UseCase{
		templates: templates,
		logger:    logger,
	}
}

// Execute заменяет шаблоны врача на перечисленные дни недели
// Остальные дни не меняются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Расписание меняет только сам врач
	if req.RequesterID != req.DoctorID {
		uc.logger.Warn("SetAvailability: user=%d tried to change schedule of doctor=%d", req.RequesterID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	// 3. Раскладываем шаблон по дням недели
	inputs, err := toTemplateInputs(req)
	if err != nil {
		uc.logger.Warn("SetAvailability: invalid request for doctor=%d: %v", req.DoctorID, err)
		return nil, err
	}

	// 4. Сохраняем все дни одним пакетом
	saved, err := uc.templates.SetTemplates(ctx, req.DoctorID, inputs)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SetAvailability: doctor=%d, days=%d", req.DoctorID, len(saved))

	return &Response{
		DoctorID:  req.DoctorID,
		Templates: saved,
	}, nil
}
