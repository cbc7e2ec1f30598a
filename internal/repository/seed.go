package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	sampleLeadTime = 10 * 24 * time.Hour
	sampleSlots    = 10
)

// SampleClasses are the studio's default classes, all starting ten days after now.
func SampleClasses(now time.Time) []domain.ClassSession {
	start := now.Add(sampleLeadTime).UTC().Truncate(time.Second)
	return []domain.ClassSession{
		{Name: "Yoga", StartTime: start, Instructor: "Rahul", AvailableSlots: sampleSlots},
		{Name: "Zumba", StartTime: start, Instructor: "Nidhi", AvailableSlots: sampleSlots},
		{Name: "HIIT", StartTime: start, Instructor: "Mohit", AvailableSlots: sampleSlots},
	}
}

// SeedSampleClasses inserts SampleClasses only when no class exists yet and
// reports how many were added. Nothing is added if any insert fails.
func SeedSampleClasses(ctx context.Context, seeder Seeder, now time.Time) (int, error) {
	added := 0
	err := seeder.SeedInTx(ctx, func(q ClassSeeder) error {
		count, err := q.CountClasses(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			logrus.WithField("classes", count).Debug("classes already present, skipping seed")
			return nil
		}

		for _, c := range SampleClasses(now) {
			class := c
			if err := q.AddClass(ctx, &class); err != nil {
				return fmt.Errorf("seed classes: %w", err)
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if added > 0 {
		logrus.WithField("classes", added).Info("seeded sample classes")
	}
	return added, nil
}
