package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Domenick1991/fitstudio/internal/domain"
)

type bookingKey struct {
	classID int64
	email   string
}

type memoryData struct {
	classes       map[int64]*domain.ClassSession
	bookings      []domain.Booking
	bookingIndex  map[bookingKey]struct{}
	nextClassID   int64
	nextBookingID int64
}

// MemoryStore keeps classes and bookings in process memory. A transaction
// holds the write lock from start to finish, so transactions never overlap;
// their writes are undone in reverse order on rollback.
type MemoryStore struct {
	mu   sync.RWMutex
	data memoryData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: memoryData{
			classes:      make(map[int64]*domain.ClassSession),
			bookingIndex: make(map[bookingKey]struct{}),
		},
	}
}

func (s *MemoryStore) RunInTx(ctx context.Context, fn func(q Queries) error) error {
	return s.inTx(ctx, func(tx *memoryTx) error { return fn(tx) })
}

// SeedInTx holds the write lock like RunInTx, so seeding never races a booking
// or another seeder.
func (s *MemoryStore) SeedInTx(ctx context.Context, fn func(q ClassSeeder) error) error {
	return s.inTx(ctx, func(tx *memoryTx) error { return fn(tx) })
}

func (s *MemoryStore) inTx(ctx context.Context, fn func(tx *memoryTx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{data: &s.data}
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
		if err != nil {
			tx.rollback()
		}
	}()

	return fn(tx)
}

func (s *MemoryStore) GetClass(ctx context.Context, id int64) (*domain.ClassSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.getClass(id)
}

func (s *MemoryStore) ListClassesWithCapacity(ctx context.Context) ([]domain.ClassSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.listClassesWithCapacity(), nil
}

func (s *MemoryStore) ListBookingsByEmail(ctx context.Context, email string) ([]domain.BookingDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.listBookingsByEmail(email), nil
}

func (s *MemoryStore) BookingExists(ctx context.Context, classID int64, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.bookingExists(classID, email), nil
}

func (s *MemoryStore) DecrementSlot(ctx context.Context, classID int64) error {
	return s.RunInTx(ctx, func(q Queries) error {
		return q.DecrementSlot(ctx, classID)
	})
}

func (s *MemoryStore) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	return s.RunInTx(ctx, func(q Queries) error {
		return q.InsertBooking(ctx, booking)
	})
}

func (s *MemoryStore) AddClass(ctx context.Context, class *domain.ClassSession) error {
	return s.inTx(ctx, func(tx *memoryTx) error { return tx.AddClass(ctx, class) })
}

func (s *MemoryStore) CountClasses(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.classes), nil
}

func (d *memoryData) getClass(id int64) (*domain.ClassSession, error) {
	c, ok := d.classes[id]
	if !ok {
		return nil, fmt.Errorf("class %d: %w", id, domain.ErrClassNotFound)
	}
	cp := *c
	return &cp, nil
}

func (d *memoryData) listClassesWithCapacity() []domain.ClassSession {
	classes := make([]domain.ClassSession, 0, len(d.classes))
	for _, c := range d.classes {
		if c.HasCapacity() {
			classes = append(classes, *c)
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		if !classes[i].StartTime.Equal(classes[j].StartTime) {
			return classes[i].StartTime.Before(classes[j].StartTime)
		}
		return classes[i].ID < classes[j].ID
	})
	return classes
}

func (d *memoryData) listBookingsByEmail(email string) []domain.BookingDetails {
	bookings := make([]domain.BookingDetails, 0)
	for _, b := range d.bookings {
		if b.ClientEmail != email {
			continue
		}
		details := domain.BookingDetails{Booking: b}
		if c, ok := d.classes[b.ClassID]; ok {
			details.ClassName = c.Name
			details.ClassStartTime = c.StartTime
			details.ClassInstructor = c.Instructor
		}
		bookings = append(bookings, details)
	}
	return bookings
}

func (d *memoryData) bookingExists(classID int64, email string) bool {
	_, ok := d.bookingIndex[bookingKey{classID: classID, email: email}]
	return ok
}

// memoryTx runs queries while MemoryStore.RunInTx holds the write lock.
type memoryTx struct {
	data *memoryData
	undo []func()
}

func (tx *memoryTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *memoryTx) GetClass(ctx context.Context, id int64) (*domain.ClassSession, error) {
	return tx.data.getClass(id)
}

func (tx *memoryTx) ListClassesWithCapacity(ctx context.Context) ([]domain.ClassSession, error) {
	return tx.data.listClassesWithCapacity(), nil
}

func (tx *memoryTx) ListBookingsByEmail(ctx context.Context, email string) ([]domain.BookingDetails, error) {
	return tx.data.listBookingsByEmail(email), nil
}

func (tx *memoryTx) BookingExists(ctx context.Context, classID int64, email string) (bool, error) {
	return tx.data.bookingExists(classID, email), nil
}

func (tx *memoryTx) DecrementSlot(ctx context.Context, classID int64) error {
	c, ok := tx.data.classes[classID]
	if !ok {
		return fmt.Errorf("class %d: %w", classID, domain.ErrClassNotFound)
	}
	if c.AvailableSlots <= 0 {
		return fmt.Errorf("class %d: %w", classID, domain.ErrNoCapacity)
	}
	c.AvailableSlots--
	tx.undo = append(tx.undo, func() { c.AvailableSlots++ })
	return nil
}

func (tx *memoryTx) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	if _, ok := tx.data.classes[booking.ClassID]; !ok {
		return fmt.Errorf("class %d: %w", booking.ClassID, domain.ErrClassNotFound)
	}
	key := bookingKey{classID: booking.ClassID, email: booking.ClientEmail}
	if _, ok := tx.data.bookingIndex[key]; ok {
		return fmt.Errorf("class %d: %w", booking.ClassID, domain.ErrDuplicateBooking)
	}

	prevID := tx.data.nextBookingID
	tx.data.nextBookingID++
	booking.ID = tx.data.nextBookingID

	b := *booking
	b.BookedAt = b.BookedAt.UTC()
	tx.data.bookings = append(tx.data.bookings, b)
	tx.data.bookingIndex[key] = struct{}{}

	tx.undo = append(tx.undo, func() {
		tx.data.bookings = tx.data.bookings[:len(tx.data.bookings)-1]
		delete(tx.data.bookingIndex, key)
		tx.data.nextBookingID = prevID
	})
	return nil
}

func (tx *memoryTx) AddClass(ctx context.Context, class *domain.ClassSession) error {
	if class.AvailableSlots < 0 {
		return fmt.Errorf("class %q: available slots must not be negative", class.Name)
	}

	prevID := tx.data.nextClassID
	tx.data.nextClassID++
	class.ID = tx.data.nextClassID
	c := *class
	c.StartTime = c.StartTime.UTC()
	tx.data.classes[c.ID] = &c

	tx.undo = append(tx.undo, func() {
		delete(tx.data.classes, c.ID)
		tx.data.nextClassID = prevID
	})
	return nil
}

func (tx *memoryTx) CountClasses(ctx context.Context) (int, error) {
	return len(tx.data.classes), nil
}

var (
	_ Store       = (*MemoryStore)(nil)
	_ Seeder      = (*MemoryStore)(nil)
	_ ClassSeeder = (*memoryTx)(nil)
	_ ClassSeeder = (*MemoryStore)(nil)
	_ Queries     = (*memoryTx)(nil)
)
