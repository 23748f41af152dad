package appointment

import "github.com/m04kA/clinic-scheduling-service/internal/domain"

// StatusUpdate изменение статуса записи по принципу compare-and-set
type StatusUpdate struct {
	ID      int64
	From    domain.AppointmentStatus
	To      domain.AppointmentStatus
	ActorID int64
	Reason  *string // только для отмены
}
