package create_booking

import (
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.Slot.IsZero() {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.Slot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slot format: %v", ErrInvalidInput, err)
	}
	req.Slot = req.Slot.Canonical()

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// containsSlot проверяет, что слот есть среди свободных
func containsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
