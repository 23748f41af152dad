package domain

// SlotPolicy clinic-wide booking rules applied on top of a template
type SlotPolicy struct {
	MinBookingNoticeMinutes int // today's slots must start strictly after now + notice
	AdvanceBookingDays      int // 0 = unlimited
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p SlotPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// DefaultSlotPolicy policy used when nothing is configured
func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
