package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	getAvailableSlots "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
)

// UseCase use case для записи пациента к врачу
type UseCase struct {
	slots  AvailableSlotsProvider
	ledger BookingLedger
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots AvailableSlotsProvider, ledger BookingLedger, logger Logger) *UseCase {
	return &UseCase{
		slots:  slots,
		ledger: ledger,
		logger: logger,
	}
}

// Execute выполняет use case записи
// Слот проверяется по актуальному списку свободных, окончательную проверку делает журнал записей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: doctor=%d, patient=%d, date=%s, slot=%s",
		req.DoctorID, req.PatientID, req.Date.Format(domain.DateFormat), req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Заново вычисляем свободные слоты
	available, err := uc.slots.Execute(ctx, &getAvailableSlots.Request{
		DoctorID: req.DoctorID,
		Date:     req.Date,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get available slots: %v", err)
		return nil, err
	}

	// 3. Слот должен быть среди свободных
	if !containsSlot(available.Slots, req.Slot) {
		uc.logger.Warn("CreateBooking: slot %s is not available for doctor=%d on %s",
			req.Slot, req.DoctorID, req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: slot %s is not offered", ErrSlotNotAvailable, req.Slot)
	}

	// 4. Создаем запись с текущей длительностью слота из шаблона
	created, err := uc.ledger.Book(ctx, &domain.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		Date:            available.Date,
		Slot:            req.Slot,
		DurationMinutes: available.SlotDurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: booking failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", created.ID)

	// Конвертируем в response
	return &Response{
		ID:              created.ID,
		DoctorID:        created.DoctorID,
		PatientID:       created.PatientID,
		Date:            created.Date,
		Slot:            created.Slot,
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
		Notes:           created.Notes,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}
