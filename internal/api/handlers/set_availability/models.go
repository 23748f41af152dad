package set_availability

import (
	setAvailability "github.com/m04kA/clinic-scheduling-service/internal/usecase/set_availability"
)

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Days                []string `json:"days"`      // ["MONDAY", "WEDNESDAY"]
	StartTime           string   `json:"startTime"` // "09:00"
	EndTime             string   `json:"endTime"`   // "17:00"
	SlotDurationMinutes int      `json:"slotDurationMinutes,omitempty"`
	BreakStart          *string  `json:"breakStart,omitempty"`
	BreakEnd            *string  `json:"breakEnd,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetAvailabilityRequest) ToUseCaseRequest(doctorID, requesterID int64) *setAvailability.Request {
	return &setAvailability.Request{
		DoctorID:            doctorID,
		RequesterID:         requesterID,
		Days:                r.Days,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		BreakStart:          r.BreakStart,
		BreakEnd:            r.BreakEnd,
	}
}
