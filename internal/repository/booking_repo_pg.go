package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/fitstudio/internal/domain"
)

func (q *pgQueries) ListBookingsByEmail(ctx context.Context, email string) ([]domain.BookingDetails, error) {
	rows, err := q.db.Query(ctx, `
        SELECT b.id, b.class_id, b.client_name, b.client_email, b.booked_at,
               c.name, c.starts_at, c.instructor
        FROM bookings b
        JOIN classes c ON c.id = b.class_id
        WHERE b.client_email = $1
        ORDER BY b.id
    `, email)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		if err := rows.Scan(&d.ID, &d.ClassID, &d.ClientName, &d.ClientEmail, &d.BookedAt,
			&d.ClassName, &d.ClassStartTime, &d.ClassInstructor); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		d.BookedAt = d.BookedAt.UTC()
		d.ClassStartTime = d.ClassStartTime.UTC()
		bookings = append(bookings, d)
	}
	return bookings, rows.Err()
}

func (q *pgQueries) BookingExists(ctx context.Context, classID int64, email string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE class_id=$1 AND client_email=$2)`, classID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check booking of class %d: %w", classID, err)
	}
	return exists, nil
}

func (q *pgQueries) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	err := q.db.QueryRow(ctx, `INSERT INTO bookings (class_id, client_name, client_email, booked_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, booking.ClassID, booking.ClientName, booking.ClientEmail, booking.BookedAt.UTC()).
		Scan(&booking.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("class %d: %w", booking.ClassID, domain.ErrDuplicateBooking)
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}
