package domain

import "time"

type Booking struct {
	ID          int64
	ClassID     int64
	ClientName  string
	ClientEmail string
	BookedAt    time.Time
}

// BookingDetails is a booking joined with the class it references.
type BookingDetails struct {
	Booking
	ClassName       string
	ClassStartTime  time.Time
	ClassInstructor string
}
