package set_availability

import (
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
)

// Request модель запроса на установку расписания врача
type Request struct {
	DoctorID            int64    // ID врача
	RequesterID         int64    // ID автора запроса
	Days                []string // Дни недели (MONDAY ... SUNDAY)
	StartTime           string   // Начало приема (HH:MM)
	EndTime             string   // Конец приема (HH:MM)
	SlotDurationMinutes int      // Длительность слота, 0 - по умолчанию
	BreakStart          *string  // Начало перерыва (опционально)
	BreakEnd            *string  // Конец перерыва (опционально)
}

// Response модель ответа с сохраненными шаблонами
type Response struct {
	DoctorID  int64                      `json:"doctorId"`
	Templates []*models.TemplateResponse `json:"templates"`
}
