package cancel_appointment

import (
	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(requesterID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		RequesterID:        requesterID,
		CancellationReason: r.CancellationReason,
	}
}
