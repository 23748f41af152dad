package models

import (
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на список записей врача или пациента
type ListAppointmentsRequest struct {
	RequesterID int64      `json:"requesterId"`
	OwnerID     int64      `json:"ownerId"`          // ID врача или пациента
	From        *time.Time `json:"from,omitempty"`   // Начало периода (включительно)
	To          *time.Time `json:"to,omitempty"`     // Конец периода (включительно)
	Status      *string    `json:"status,omitempty"` // Фильтр по статусу с учетом COMPLETED
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	RequesterID        int64   `json:"requesterId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	DoctorID           int64      `json:"doctorId"`
	PatientID          int64      `json:"patientId"`
	Date               string     `json:"date"` // "2025-10-15"
	Slot               string     `json:"slot"` // "10:00"
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *int64     `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// EventResponse запись журнала переходов
type EventResponse struct {
	ID         int64     `json:"id"`
	FromStatus *string   `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ActorID    int64     `json:"actorId"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryResponse история переходов записи
type HistoryResponse struct {
	AppointmentID int64            `json:"appointmentId"`
	Events        []*EventResponse `json:"events"`
}

// Конвертеры

// FromDomainAppointment конвертирует domain запись в ответ
// Статус должен быть уже приведен к наблюдаемому (ResolveStatus)
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		DoctorID:           a.DoctorID,
		PatientID:          a.PatientID,
		Date:               a.Date.Format(domain.DateFormat),
		Slot:               a.Slot.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledBy:        a.CancelledBy,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}

// FromDomainHistory конвертирует журнал переходов
func FromDomainHistory(appointmentID int64, events []*domain.AppointmentEvent) *HistoryResponse {
	result := make([]*EventResponse, 0, len(events))
	for _, e := range events {
		var from *string
		if e.FromStatus != nil {
			s := string(*e.FromStatus)
			from = &s
		}
		result = append(result, &EventResponse{
			ID:         e.ID,
			FromStatus: from,
			ToStatus:   string(e.ToStatus),
			ActorID:    e.ActorID,
			Reason:     e.Reason,
			CreatedAt:  e.CreatedAt,
		})
	}
	return &HistoryResponse{AppointmentID: appointmentID, Events: result}
}
