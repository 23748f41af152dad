package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// UseCase use case для получения свободных слотов врача на дату
type UseCase struct {
	templates       TemplateProvider
	appointmentRepo AppointmentRepository
	policy          domain.SlotPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	templates TemplateProvider,
	appointmentRepo AppointmentRepository,
	policy domain.SlotPolicy,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		templates:       templates,
		appointmentRepo: appointmentRepo,
		policy:          policy,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Дата без шаблона дает пустой список, а не ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	day := domain.DayOfWeekFromDate(req.Date)

	response := &Response{
		DoctorID:  req.DoctorID,
		Date:      dateOnly(req.Date, now.Location()),
		DayOfWeek: day,
		Slots:     []types.TimeString{},
	}

	// 3. Получаем шаблон на день недели
	tpl, err := uc.templates.GetTemplate(ctx, req.DoctorID, day)
	if err != nil {
		if errors.Is(err, availability.ErrTemplateNotConfigured) {
			uc.logger.Info("GetAvailableSlots: doctor=%d has no template for %s", req.DoctorID, day)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get template for doctor=%d, day=%s: %v", req.DoctorID, day, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrStorageUnavailable, err)
	}
	response.SlotDurationMinutes = tpl.SlotDurationMinutes

	// 4. Получаем активные записи врача на эту дату
	filter := domain.AppointmentFilter{
		DoctorID:   &req.DoctorID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
		ActiveOnly: true,
	}

	appointments, err := uc.appointmentRepo.GetByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrStorageUnavailable, err)
	}

	// 5. Вычисляем свободные слоты
	response.Slots = DeriveSlots(tpl, req.Date, now, uc.policy, occupiedSlots(appointments))

	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s, slots=%d",
		req.DoctorID, req.Date.Format(domain.DateFormat), len(response.Slots))

	return response, nil
}

// IsSlotAvailable проверяет, что слот сейчас свободен для записи
func (uc *UseCase) IsSlotAvailable(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	if err := validateCheckRequest(req); err != nil {
		uc.logger.Warn("IsSlotAvailable: validation failed: %v", err)
		return nil, err
	}

	slots, err := uc.Execute(ctx, &Request{DoctorID: req.DoctorID, Date: req.Date})
	if err != nil {
		return nil, err
	}

	return &CheckResponse{
		DoctorID:  req.DoctorID,
		Date:      slots.Date,
		Slot:      req.Slot,
		Available: containsSlot(slots.Slots, req.Slot),
	}, nil
}
