package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))

	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
}

func TestAppointment_EffectiveStatus(t *testing.T) {
	appt := &Appointment{
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Slot:            "10:00",
		DurationMinutes: 30,
		Status:          StatusConfirmed,
	}

	during := time.Date(2025, 3, 10, 10, 15, 0, 0, time.UTC)
	atEnd := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, StatusConfirmed, appt.EffectiveStatus(during))
	assert.Equal(t, StatusCompleted, appt.EffectiveStatus(atEnd))

	appt.Status = StatusPending
	assert.Equal(t, StatusPending, appt.EffectiveStatus(atEnd))

	appt.Status = StatusCancelled
	assert.Equal(t, StatusCancelled, appt.EffectiveStatus(atEnd))
}

func TestAppointment_EndsAtUsesLocation(t *testing.T) {
	loc := time.FixedZone("clinic", 5*60*60)
	appt := &Appointment{
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Slot:            "23:30",
		DurationMinutes: 45,
	}

	assert.Equal(t, time.Date(2025, 3, 11, 0, 15, 0, 0, loc), appt.EndsAt(loc))
}

func TestAppointment_IsParticipant(t *testing.T) {
	appt := &Appointment{DoctorID: 1, PatientID: 2}

	assert.True(t, appt.IsParticipant(1))
	assert.True(t, appt.IsParticipant(2))
	assert.False(t, appt.IsParticipant(3))
}
