package set_availability

import (
	"fmt"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if len(req.Days) == 0 {
		return fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	if req.SlotDurationMinutes < 0 {
		return fmt.Errorf("%w: slotDurationMinutes must not be negative", ErrInvalidInput)
	}

	return nil
}

// parseTime разбирает время и приводит его к HH:MM
func parseTime(field, value string) (types.TimeString, error) {
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	t, err := types.NewTimeStringFromString(value)
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s: %v", ErrInvalidInput, field, err)
	}
	return t, nil
}

// parseOptionalTime разбирает необязательное время HH:MM
func parseOptionalTime(field string, value *string) (*types.TimeString, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseTime(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseDays разбирает дни недели, повторы схлопываются
func parseDays(days []string) ([]domain.DayOfWeek, error) {
	result := make([]domain.DayOfWeek, 0, len(days))
	seen := make(map[domain.DayOfWeek]struct{}, len(days))

	for _, raw := range days {
		day, err := domain.ParseDayOfWeek(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		result = append(result, day)
	}

	return result, nil
}

// toTemplateInputs раскладывает общий шаблон по дням недели
func toTemplateInputs(req *Request) ([]models.TemplateInput, error) {
	days, err := parseDays(req.Days)
	if err != nil {
		return nil, err
	}

	start, err := parseTime("startTime", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("endTime", req.EndTime)
	if err != nil {
		return nil, err
	}
	breakStart, err := parseOptionalTime("breakStart", req.BreakStart)
	if err != nil {
		return nil, err
	}
	breakEnd, err := parseOptionalTime("breakEnd", req.BreakEnd)
	if err != nil {
		return nil, err
	}

	inputs := make([]models.TemplateInput, 0, len(days))
	for _, day := range days {
		inputs = append(inputs, models.TemplateInput{
			DayOfWeek:           day,
			StartTime:           start,
			EndTime:             end,
			SlotDurationMinutes: req.SlotDurationMinutes,
			BreakStart:          breakStart,
			BreakEnd:            breakEnd,
		})
	}

	return inputs, nil
}
