package get_available_slots

import (
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// DeriveSlots вычисляет свободные слоты шаблона на дату
//
// Слоты идут от начала приема с шагом длительности слота. Слот [t, t+d)
// отбрасывается, если выходит за конец приема или пересекается с перерывом
// (пересечение строгое: слот, заканчивающийся ровно в начале перерыва, остается).
// Для прошедшей даты результат пустой, для сегодняшней остаются слоты,
// начинающиеся строго позже now + минимального времени до записи.
// Занятые слоты вычитаются. Функция чистая: now передается явно
func DeriveSlots(
	tpl *domain.AvailabilityTemplate,
	date time.Time,
	now time.Time,
	policy domain.SlotPolicy,
	occupied []types.TimeString,
) []types.TimeString {
	result := make([]types.TimeString, 0)

	if tpl == nil || !tpl.IsActive || tpl.SlotDurationMinutes <= 0 {
		return result
	}

	loc := now.Location()
	day := dateOnly(date, loc)
	today := dateOnly(now, loc)

	// Прошедшие даты не предлагаются
	if day.Before(today) {
		return result
	}

	// Ограничение горизонта записи
	if policy.HasAdvanceBookingLimit() && day.After(today.AddDate(0, 0, policy.AdvanceBookingDays)) {
		return result
	}

	start, end := tpl.StartTime.Minutes(), tpl.EndTime.Minutes()
	if start < 0 || end < 0 {
		return result
	}

	breakStart, breakEnd := -1, -1
	if tpl.HasBreak() {
		breakStart, breakEnd = tpl.BreakStart.Minutes(), tpl.BreakEnd.Minutes()
	}

	taken := make(map[int]struct{}, len(occupied))
	for _, slot := range occupied {
		taken[slot.Minutes()] = struct{}{}
	}

	isToday := day.Equal(today)
	cutoff := now.Add(time.Duration(policy.MinBookingNoticeMinutes) * time.Minute)
	duration := tpl.SlotDurationMinutes

	for t := start; t+duration <= end; t += duration {
		// Пересечение с перерывом [breakStart, breakEnd)
		if breakStart >= 0 && t < breakEnd && t+duration > breakStart {
			continue
		}

		if isToday {
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), t/60, t%60, 0, 0, loc)
			if !slotStart.After(cutoff) {
				continue
			}
		}

		if _, busy := taken[t]; busy {
			continue
		}

		slot, err := types.NewTimeStringFromMinutes(t)
		if err != nil {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// occupiedSlots собирает слоты активных записей
func occupiedSlots(appointments []*domain.Appointment) []types.TimeString {
	result := make([]types.TimeString, 0, len(appointments))
	for _, appt := range appointments {
		if appt.IsActive() {
			result = append(result, appt.Slot)
		}
	}
	return result
}

// containsSlot проверяет, что слот есть в списке
func containsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
