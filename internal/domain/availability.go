package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// DayOfWeek a weekday a template applies to
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Weekdays all days in calendar order, Monday first
var Weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayOfWeek parses a weekday name, case-insensitive
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	day := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	if !day.IsValid() {
		return "", fmt.Errorf("unknown day of week %q", s)
	}
	return day, nil
}

// DayOfWeekFromDate resolves the weekday of a calendar date
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsValid returns true for one of the seven known days
func (d DayOfWeek) IsValid() bool {
	return d.Index() > 0
}

// Index returns 1 for Monday through 7 for Sunday, 0 for unknown values
func (d DayOfWeek) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i + 1
		}
	}
	return 0
}

// AvailabilityTemplate a doctor's recurring availability for one weekday
type AvailabilityTemplate struct {
	ID                  int64
	DoctorID            int64
	DayOfWeek           DayOfWeek
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	BreakStart          *types.TimeString
	BreakEnd            *types.TimeString
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasBreak returns true if the template defines a break window
func (t *AvailabilityTemplate) HasBreak() bool {
	return t.BreakStart != nil && t.BreakEnd != nil
}

// Validate checks the template invariants, errors wrap ErrInvalidTemplate
func (t *AvailabilityTemplate) Validate() error {
	if t.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidTemplate)
	}
	if !t.DayOfWeek.IsValid() {
		return fmt.Errorf("%w: unknown day of week %q", ErrInvalidTemplate, t.DayOfWeek)
	}
	if err := t.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidTemplate, err)
	}
	if err := t.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidTemplate, err)
	}
	if !t.StartTime.IsBefore(t.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidTemplate, t.StartTime, t.EndTime)
	}
	if !IsAllowedSlotDuration(t.SlotDurationMinutes) {
		return fmt.Errorf("%w: slot duration %d is not one of %v", ErrInvalidTemplate, t.SlotDurationMinutes, AllowedSlotDurations)
	}

	if (t.BreakStart == nil) != (t.BreakEnd == nil) {
		return fmt.Errorf("%w: breakStart and breakEnd must be set together", ErrInvalidTemplate)
	}
	if !t.HasBreak() {
		return nil
	}

	if err := t.BreakStart.Validate(); err != nil {
		return fmt.Errorf("%w: breakStart: %v", ErrInvalidTemplate, err)
	}
	if err := t.BreakEnd.Validate(); err != nil {
		return fmt.Errorf("%w: breakEnd: %v", ErrInvalidTemplate, err)
	}
	// startTime <= breakStart < breakEnd <= endTime
	if t.BreakStart.IsBefore(t.StartTime) || !t.BreakStart.IsBefore(*t.BreakEnd) || t.BreakEnd.IsAfter(t.EndTime) {
		return fmt.Errorf("%w: break %s-%s must lie within %s-%s", ErrInvalidTemplate,
			*t.BreakStart, *t.BreakEnd, t.StartTime, t.EndTime)
	}

	return nil
}

// IsAllowedSlotDuration reports whether minutes is a permitted slot length
func IsAllowedSlotDuration(minutes int) bool {
	for _, allowed := range AllowedSlotDurations {
		if allowed == minutes {
			return true
		}
	}
	return false
}
