package get_patient_appointments

import (
	"net/url"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров from, to, status
func ToServiceRequest(ownerID, requesterID int64, query url.Values) (*models.ListAppointmentsRequest, error) {
	from, err := handlers.ParseOptionalDate(query.Get("from"))
	if err != nil {
		return nil, err
	}

	to, err := handlers.ParseOptionalDate(query.Get("to"))
	if err != nil {
		return nil, err
	}

	var status *string
	if s := query.Get("status"); s != "" {
		status = &s
	}

	return &models.ListAppointmentsRequest{
		RequesterID: requesterID,
		OwnerID:     ownerID,
		From:        from,
		To:          to,
		Status:      status,
	}, nil
}
