package create_booking

import (
	"time"

	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// Request модель запроса на запись к врачу
type Request struct {
	DoctorID  int64            // ID врача
	PatientID int64            // ID пациента (автор запроса)
	Date      time.Time        // Дата приема (без времени)
	Slot      types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Заметки пациента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID записи
	DoctorID        int64            // ID врача
	PatientID       int64            // ID пациента
	Date            time.Time        // Дата приема
	Slot            types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи (PENDING)
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
