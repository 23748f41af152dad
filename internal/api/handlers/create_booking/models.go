package create_booking

import (
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	createBooking "github.com/m04kA/clinic-scheduling-service/internal/usecase/create_booking"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// CreateBookingRequest HTTP request model
// Пациентом считается автор запроса (X-User-ID)
type CreateBookingRequest struct {
	DoctorID int64   `json:"doctorId"`
	Date     string  `json:"date"` // "2025-10-15"
	Slot     string  `json:"slot"` // "10:00"
	Notes    *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	DoctorID        int64   `json:"doctorId"`
	PatientID       int64   `json:"patientId"`
	Date            string  `json:"date"`
	Slot            string  `json:"slot"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(patientID int64) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := types.NewTimeStringFromString(r.Slot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		DoctorID:  r.DoctorID,
		PatientID: patientID,
		Date:      date,
		Slot:      slot,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		DoctorID:        resp.DoctorID,
		PatientID:       resp.PatientID,
		Date:            resp.Date.Format(domain.DateFormat),
		Slot:            resp.Slot.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
