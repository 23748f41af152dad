package get_doctor_appointments

import (
	"context"

	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	ListForDoctor(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
