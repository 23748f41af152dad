package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAdvanceBookingDays       = 365
	MaxBookingNoticeMinutes     = 10080 // 1 week
)

// AllowedSlotDurations slot lengths a template may use
var AllowedSlotDurations = []int{15, 30, 45, 60}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy a slot
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
