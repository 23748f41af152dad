package models

import (
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// Request модели

// TemplateInput шаблон доступности на один день недели
type TemplateInput struct {
	DayOfWeek           domain.DayOfWeek
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int // 0 - длительность по умолчанию
	BreakStart          *types.TimeString
	BreakEnd            *types.TimeString
}

// ToDomain конвертирует входную модель в domain шаблон врача
func (in TemplateInput) ToDomain(doctorID int64) *domain.AvailabilityTemplate {
	duration := in.SlotDurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	return &domain.AvailabilityTemplate{
		DoctorID:            doctorID,
		DayOfWeek:           in.DayOfWeek,
		StartTime:           in.StartTime.Canonical(),
		EndTime:             in.EndTime.Canonical(),
		SlotDurationMinutes: duration,
		BreakStart:          canonical(in.BreakStart),
		BreakEnd:            canonical(in.BreakEnd),
		IsActive:            true,
	}
}

func canonical(t *types.TimeString) *types.TimeString {
	if t == nil {
		return nil
	}
	c := t.Canonical()
	return &c
}

// Response модели

// TemplateResponse ответ с данными шаблона
type TemplateResponse struct {
	ID                  int64     `json:"id"`
	DoctorID            int64     `json:"doctorId"`
	DayOfWeek           string    `json:"dayOfWeek"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	BreakStart          *string   `json:"breakStart,omitempty"`
	BreakEnd            *string   `json:"breakEnd,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainTemplate конвертирует domain шаблон в ответ
func FromDomainTemplate(tpl *domain.AvailabilityTemplate) *TemplateResponse {
	resp := &TemplateResponse{
		ID:                  tpl.ID,
		DoctorID:            tpl.DoctorID,
		DayOfWeek:           string(tpl.DayOfWeek),
		StartTime:           tpl.StartTime.String(),
		EndTime:             tpl.EndTime.String(),
		SlotDurationMinutes: tpl.SlotDurationMinutes,
		UpdatedAt:           tpl.UpdatedAt,
	}

	if tpl.HasBreak() {
		start, end := tpl.BreakStart.String(), tpl.BreakEnd.String()
		resp.BreakStart = &start
		resp.BreakEnd = &end
	}

	return resp
}

// FromDomainTemplateList конвертирует список шаблонов
func FromDomainTemplateList(templates []*domain.AvailabilityTemplate) []*TemplateResponse {
	result := make([]*TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		result = append(result, FromDomainTemplate(tpl))
	}
	return result
}

// DaysResponse дни недели с настроенной доступностью
type DaysResponse struct {
	DoctorID int64    `json:"doctorId"`
	Days     []string `json:"days"`
}

// FromDomainDays конвертирует дни недели в ответ
func FromDomainDays(doctorID int64, days []domain.DayOfWeek) *DaysResponse {
	result := make([]string, 0, len(days))
	for _, day := range days {
		result = append(result, string(day))
	}
	return &DaysResponse{DoctorID: doctorID, Days: result}
}
