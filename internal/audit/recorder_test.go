package audit

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/fitstudio/internal/kafka"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Record(t *testing.T) {
	logger, hook := test.NewNullLogger()
	recorder := NewRecorder(logger)

	err := recorder.Record(context.Background(), kafka.BookingEvent{
		Type:        kafka.EventBookingCreated,
		BookingID:   3,
		ClassID:     1,
		ClassName:   "Zumba",
		ClientEmail: "b@x.com",
		BookedAt:    time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "booking_created", entry.Data["event"])
	assert.Equal(t, int64(3), entry.Data["booking_id"])
	assert.Equal(t, "Zumba", entry.Data["class_name"])
	assert.Equal(t, "2025-04-20T10:00:00Z", entry.Data["booked_at"])
}

func TestNewRecorder_DefaultsToStandardLogger(t *testing.T) {
	recorder := NewRecorder(nil)
	assert.Equal(t, logrus.StandardLogger(), recorder.log)
}
