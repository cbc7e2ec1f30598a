package repository

import (
	"context"

	"github.com/Domenick1991/fitstudio/internal/domain"
)

// Queries are the reads and writes over classes and bookings. The same set is
// available on a Store directly and on the transaction handed to RunInTx.
type Queries interface {
	// GetClass returns domain.ErrClassNotFound when the id is unknown. Inside a
	// transaction the class row stays locked until commit or rollback.
	GetClass(ctx context.Context, id int64) (*domain.ClassSession, error)
	ListClassesWithCapacity(ctx context.Context) ([]domain.ClassSession, error)
	ListBookingsByEmail(ctx context.Context, email string) ([]domain.BookingDetails, error)
	BookingExists(ctx context.Context, classID int64, email string) (bool, error)
	// DecrementSlot returns domain.ErrNoCapacity when no slot is left.
	DecrementSlot(ctx context.Context, classID int64) error
	// InsertBooking sets booking.ID. A second booking for the same class and
	// email fails with domain.ErrDuplicateBooking.
	InsertBooking(ctx context.Context, booking *domain.Booking) error
}

type Store interface {
	Queries
	// RunInTx commits when fn returns nil and rolls back every write made
	// through q otherwise.
	RunInTx(ctx context.Context, fn func(q Queries) error) error
}

// ClassSeeder creates classes. Only seeding and tests use it.
type ClassSeeder interface {
	AddClass(ctx context.Context, class *domain.ClassSession) error
	CountClasses(ctx context.Context) (int, error)
}

// Seeder runs fn as one unit that excludes every other seeder, so checking
// for existing classes and adding new ones cannot interleave.
type Seeder interface {
	SeedInTx(ctx context.Context, fn func(q ClassSeeder) error) error
}
