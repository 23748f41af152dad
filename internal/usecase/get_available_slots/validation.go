package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateCheckRequest валидирует запрос проверки слота
func validateCheckRequest(req *CheckRequest) error {
	if err := validateRequest(&Request{DoctorID: req.DoctorID, Date: req.Date}); err != nil {
		return err
	}

	if err := req.Slot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slot: %v", ErrInvalidInput, err)
	}

	return nil
}

// dateOnly переносит календарную дату в локацию loc на полночь
func dateOnly(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
