// Package audit keeps a structured trail of booking events read from Kafka.
package audit

import (
	"context"
	"time"

	"github.com/Domenick1991/fitstudio/internal/kafka"
	"github.com/sirupsen/logrus"
)

type Recorder struct {
	log logrus.FieldLogger
}

func NewRecorder(log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Recorder{log: log}
}

func (r *Recorder) Record(ctx context.Context, event kafka.BookingEvent) error {
	r.log.WithFields(logrus.Fields{
		"event":        event.Type,
		"booking_id":   event.BookingID,
		"class_id":     event.ClassID,
		"class_name":   event.ClassName,
		"client_email": event.ClientEmail,
		"booked_at":    event.BookedAt.UTC().Format(time.RFC3339),
	}).Info("booking event recorded")
	return nil
}
