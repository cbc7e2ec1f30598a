package domain

import (
	"errors"
	"fmt"
)

var (
	// Input errors. Everything that wraps ErrInvalidInput is reported as a bad request.
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidEmail    = fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	ErrInvalidTimezone = fmt.Errorf("%w: invalid timezone", ErrInvalidInput)

	// Lookup errors
	ErrClassNotFound = errors.New("class not found")
	ErrNoBookings    = errors.New("no bookings found")

	// Booking errors
	ErrNoCapacity       = errors.New("class has no available slots")
	ErrDuplicateBooking = errors.New("client has already booked this class")
)
