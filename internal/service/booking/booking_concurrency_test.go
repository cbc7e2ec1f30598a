package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/Domenick1991/fitstudio/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryClass(t *testing.T, store *repository.MemoryStore, slots int) int64 {
	t.Helper()
	c := &domain.ClassSession{
		Name:           "HIIT",
		StartTime:      time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		Instructor:     "Mohit",
		AvailableSlots: slots,
	}
	require.NoError(t, store.AddClass(context.Background(), c))
	return c.ID
}

func TestBookingService_ConcurrentBookingsNeverOversell(t *testing.T) {
	const (
		clients = 25
		slots   = 5
	)
	store := repository.NewMemoryStore()
	classID := newMemoryClass(t, store, slots)
	service := NewBookingService(store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		full      int
	)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), CreateBookingInput{
				ClassID:     classID,
				ClientName:  fmt.Sprintf("client %d", i),
				ClientEmail: fmt.Sprintf("client%d@example.com", i),
			}, "UTC")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrNoCapacity):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, slots, succeeded)
	assert.Equal(t, clients-slots, full)

	c, err := store.GetClass(context.Background(), classID)
	require.NoError(t, err)
	assert.Equal(t, 0, c.AvailableSlots)
}

func TestBookingService_ConcurrentSameClientBooksOnce(t *testing.T) {
	const attempts = 10
	store := repository.NewMemoryStore()
	classID := newMemoryClass(t, store, attempts)
	service := NewBookingService(store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		duplicate int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), CreateBookingInput{
				ClassID:     classID,
				ClientName:  "Same",
				ClientEmail: "same@example.com",
			}, "UTC")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, domain.ErrDuplicateBooking) {
				duplicate++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, duplicate)

	c, err := store.GetClass(context.Background(), classID)
	require.NoError(t, err)
	assert.Equal(t, attempts-1, c.AvailableSlots)
}

func TestBookingService_LastSlotScenario(t *testing.T) {
	store := repository.NewMemoryStore()
	classID := newMemoryClass(t, store, 1)
	service := NewBookingService(store, WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	receipt, err := service.CreateBooking(ctx, CreateBookingInput{ClassID: classID, ClientName: "A", ClientEmail: "A@x.com"}, "Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", receipt.ClientEmail)
	assert.Equal(t, "HIIT", receipt.Name)
	assert.Equal(t, "2025-04-20 10:00:00", receipt.BookedAt)

	_, err = service.CreateBooking(ctx, CreateBookingInput{ClassID: classID, ClientName: "B", ClientEmail: "b@x.com"}, "UTC")
	assert.ErrorIs(t, err, domain.ErrNoCapacity)

	// the class is full, so capacity is reported before the duplicate
	_, err = service.CreateBooking(ctx, CreateBookingInput{ClassID: classID, ClientName: "A", ClientEmail: "a@x.com"}, "UTC")
	assert.ErrorIs(t, err, domain.ErrNoCapacity)

	views, err := service.ListBookingsForClient(ctx, "A@X.COM", "Asia/Kolkata")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "2025-05-01 17:30:00", views[0].DateTime)

	_, err = service.ListBookingsForClient(ctx, "b@x.com", "UTC")
	assert.ErrorIs(t, err, domain.ErrNoBookings)
}

func TestBookingService_UnknownClassLeavesStoreUntouched(t *testing.T) {
	store := repository.NewMemoryStore()
	classID := newMemoryClass(t, store, 2)
	service := NewBookingService(store)
	ctx := context.Background()

	_, err := service.CreateBooking(ctx, CreateBookingInput{ClassID: classID + 100, ClientName: "A", ClientEmail: "a@x.com"}, "UTC")
	assert.ErrorIs(t, err, domain.ErrClassNotFound)

	c, err := store.GetClass(ctx, classID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.AvailableSlots)

	bookings, err := store.ListBookingsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
