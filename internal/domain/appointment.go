package domain

import (
	"time"

	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// transitions allowed explicit status changes; COMPLETED is reached by time only
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// ParseAppointmentStatus validates a status value
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return status, true
	default:
		return "", false
	}
}

// CanTransition reports whether an explicit change from -> to is allowed
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses nothing can leave
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment a patient's booking of one slot with a doctor
type Appointment struct {
	ID              int64
	DoctorID        int64
	PatientID       int64
	Date            time.Time // calendar date, time part is ignored
	Slot            types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	Notes           *string

	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsParticipant returns true if userID is the doctor or the patient
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.DoctorID == userID || a.PatientID == userID
}

// StartsAt returns the slot start in the given location
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	y, m, d := a.Date.Date()
	return a.Slot.OnDate(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

// EndsAt returns the slot end in the given location
func (a *Appointment) EndsAt(loc *time.Location) time.Time {
	return a.StartsAt(loc).Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// HasElapsed returns true once the slot has fully passed at now
func (a *Appointment) HasElapsed(now time.Time) bool {
	return !now.Before(a.EndsAt(now.Location()))
}

// EffectiveStatus returns the observable status at now:
// a CONFIRMED appointment whose slot has elapsed is COMPLETED
func (a *Appointment) EffectiveStatus(now time.Time) AppointmentStatus {
	if a.Status == StatusConfirmed && a.HasElapsed(now) {
		return StatusCompleted
	}
	return a.Status
}

// ResolveStatus replaces Status with the effective status at now
func (a *Appointment) ResolveStatus(now time.Time) *Appointment {
	a.Status = a.EffectiveStatus(now)
	return a
}

// AppointmentFilter filter for appointment listings
type AppointmentFilter struct {
	DoctorID   *int64
	PatientID  *int64
	StartDate  *time.Time // inclusive
	EndDate    *time.Time // inclusive
	ActiveOnly bool       // only PENDING and CONFIRMED
}

// AppointmentEvent a recorded appointment status change
type AppointmentEvent struct {
	ID            int64
	AppointmentID int64
	FromStatus    *AppointmentStatus // nil for creation
	ToStatus      AppointmentStatus
	ActorID       int64
	Reason        *string
	CreatedAt     time.Time
}
