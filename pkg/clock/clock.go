package clock

import "time"

// Clock текущее время в часовом поясе клиники
// Все календарные даты (сегодня, прошлое) вычисляются в этой локации
type Clock struct {
	loc *time.Location
}

// New создает часы для указанной локации (nil - UTC)
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

// Now возвращает текущее время в локации клиники
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location возвращает локацию клиники
func (c *Clock) Location() *time.Location {
	return c.loc
}
