package get_available_slots

import (
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// Request модель запроса свободных слотов
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата (без времени)
}

// Response модель ответа со свободными слотами
type Response struct {
	DoctorID            int64
	Date                time.Time
	DayOfWeek           domain.DayOfWeek
	SlotDurationMinutes int                // 0, если на день нет шаблона
	Slots               []types.TimeString // По возрастанию
}

// CheckRequest модель запроса проверки одного слота
type CheckRequest struct {
	DoctorID int64
	Date     time.Time
	Slot     types.TimeString
}

// CheckResponse модель ответа проверки слота
type CheckResponse struct {
	DoctorID  int64
	Date      time.Time
	Slot      types.TimeString
	Available bool
}
