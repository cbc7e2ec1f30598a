package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSampleClasses_EmptyStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	added, err := SeedSampleClasses(ctx, s, now)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	classes, err := s.ListClassesWithCapacity(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 3)

	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
		assert.Equal(t, 10, c.AvailableSlots)
		assert.True(t, now.Add(10*24*time.Hour).Equal(c.StartTime))
	}
	assert.ElementsMatch(t, []string{"Yoga", "Zumba", "HIIT"}, names)
}

func TestSeedSampleClasses_SkipsWhenClassesExist(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	addClass(t, s, "Pilates", time.Now(), 4)

	added, err := SeedSampleClasses(ctx, s, time.Now())
	require.NoError(t, err)
	assert.Zero(t, added)

	count, err := s.CountClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeedSampleClasses_ConcurrentSeedersAddOnce(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			added, err := SeedSampleClasses(ctx, s, now)
			assert.NoError(t, err)
			mu.Lock()
			total += added
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, total)
	count, err := s.CountClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

// failingSeeder fails the second class insert inside the store's transaction.
type failingSeeder struct {
	*MemoryStore
}

func (f failingSeeder) SeedInTx(ctx context.Context, fn func(q ClassSeeder) error) error {
	return f.MemoryStore.SeedInTx(ctx, func(q ClassSeeder) error {
		return fn(&failAfter{ClassSeeder: q, left: 1})
	})
}

type failAfter struct {
	ClassSeeder
	left int
}

func (f *failAfter) AddClass(ctx context.Context, class *domain.ClassSession) error {
	if f.left == 0 {
		return errors.New("disk full")
	}
	f.left--
	return f.ClassSeeder.AddClass(ctx, class)
}

func TestSeedSampleClasses_RollsBackOnFailure(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	added, err := SeedSampleClasses(ctx, failingSeeder{s}, time.Now())

	assert.EqualError(t, err, "seed classes: disk full")
	assert.Zero(t, added)
	count, err := s.CountClasses(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// ids handed out by the rolled back insert are reused
	c := &domain.ClassSession{Name: "Pilates", StartTime: time.Now(), Instructor: "Mira", AvailableSlots: 2}
	require.NoError(t, s.AddClass(ctx, c))
	assert.Equal(t, int64(1), c.ID)
}
