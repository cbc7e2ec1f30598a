package domain

import "time"

// ClassSession is a scheduled class. StartTime is always stored as a UTC instant.
type ClassSession struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	StartTime      time.Time `json:"start_time"`
	Instructor     string    `json:"instructor"`
	AvailableSlots int       `json:"available_slots"`
}

func (c ClassSession) HasCapacity() bool {
	return c.AvailableSlots > 0
}
