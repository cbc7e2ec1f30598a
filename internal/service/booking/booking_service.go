package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/Domenick1991/fitstudio/internal/kafka"
	"github.com/Domenick1991/fitstudio/internal/repository"
	"github.com/Domenick1991/fitstudio/internal/timezone"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	ListBookingsForClient(ctx context.Context, email, zone string) ([]BookingView, error)
	CreateBooking(ctx context.Context, input CreateBookingInput, zone string) (*Receipt, error)
}

// CacheInvalidator drops cached class listings after capacity changes.
type CacheInvalidator interface {
	InvalidateClasses(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	// Any id is accepted here; unknown ids come back from the store as not found.
	ClassID     int64  `json:"class_id"`
	ClientName  string `json:"client_name" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
}

type BookingView struct {
	ID          int64  `json:"id"`
	ClassID     int64  `json:"class_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	BookedAt    string `json:"booked_at"`
	Name        string `json:"name"`
	DateTime    string `json:"datetime"`
	Instructor  string `json:"instructor"`
}

// Receipt confirms a new booking.
type Receipt struct {
	ID          int64  `json:"id"`
	ClassID     int64  `json:"class_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Name        string `json:"name"`
	Instructor  string `json:"instructor"`
	BookedAt    string `json:"booked_at"`
}

type BookingService struct {
	store        repository.Store
	cache        CacheInvalidator
	producer     Producer
	bookingTopic string
	validate     *validator.Validate
	now          func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithCache(cache CacheInvalidator) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

// WithPublisher emits a booking_created event to topic after every commit.
func WithPublisher(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(store repository.Store, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		store:    store,
		validate: newValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *BookingService) ListBookingsForClient(ctx context.Context, email, zone string) ([]BookingView, error) {
	email = normalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrInvalidEmail, email)
	}
	loc, err := timezone.Load(zone)
	if err != nil {
		return nil, err
	}

	bookings, err := s.store.ListBookingsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("%w for email: %s", domain.ErrNoBookings, email)
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, BookingView{
			ID:          b.ID,
			ClassID:     b.ClassID,
			ClientName:  b.ClientName,
			ClientEmail: b.ClientEmail,
			BookedAt:    timezone.FormatIn(b.BookedAt, loc),
			Name:        b.ClassName,
			DateTime:    timezone.FormatIn(b.ClassStartTime, loc),
			Instructor:  b.ClassInstructor,
		})
	}
	return views, nil
}

// CreateBooking reserves one slot for the client. Existence, capacity and the
// duplicate check run in that order inside one transaction; the class row is
// locked for its duration so concurrent callers cannot oversell.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput, zone string) (*Receipt, error) {
	input.ClientEmail = normalizeEmail(input.ClientEmail)
	input.ClientName = strings.TrimSpace(input.ClientName)
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	loc, err := timezone.Load(zone)
	if err != nil {
		return nil, err
	}

	var (
		class   *domain.ClassSession
		booking *domain.Booking
	)
	err = s.store.RunInTx(ctx, func(q repository.Queries) error {
		c, err := q.GetClass(ctx, input.ClassID)
		if err != nil {
			return err
		}
		if !c.HasCapacity() {
			return fmt.Errorf("class %d: %w", c.ID, domain.ErrNoCapacity)
		}
		exists, err := q.BookingExists(ctx, c.ID, input.ClientEmail)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("class %d: %w", c.ID, domain.ErrDuplicateBooking)
		}
		if err := q.DecrementSlot(ctx, c.ID); err != nil {
			return err
		}

		b := &domain.Booking{
			ClassID:     c.ID,
			ClientName:  input.ClientName,
			ClientEmail: input.ClientEmail,
			BookedAt:    s.now().UTC(),
		}
		if err := q.InsertBooking(ctx, b); err != nil {
			return err
		}
		class, booking = c, b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, class, booking)

	return &Receipt{
		ID:          booking.ID,
		ClassID:     class.ID,
		ClientName:  booking.ClientName,
		ClientEmail: booking.ClientEmail,
		Name:        class.Name,
		Instructor:  class.Instructor,
		BookedAt:    timezone.FormatIn(booking.BookedAt, loc),
	}, nil
}

// afterCommit never fails the booking; the row is already durable. It runs
// detached from the request so a disconnect cannot leave a stale cache behind.
func (s *BookingService) afterCommit(ctx context.Context, class *domain.ClassSession, booking *domain.Booking) {
	ctx = context.WithoutCancel(ctx)
	entry := logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"class_id":   class.ID,
	})

	if s.cache != nil {
		if err := s.cache.InvalidateClasses(ctx); err != nil {
			entry.WithError(err).Warn("failed to invalidate classes cache")
		}
	}
	if err := s.publish(ctx, class, booking); err != nil {
		entry.WithError(err).Warn("failed to publish booking_created event")
	}
	entry.Info("booking created")
}

func (s *BookingService) publish(ctx context.Context, class *domain.ClassSession, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:        kafka.EventBookingCreated,
		BookingID:   booking.ID,
		ClassID:     class.ID,
		ClassName:   class.Name,
		ClientName:  booking.ClientName,
		ClientEmail: booking.ClientEmail,
		BookedAt:    booking.BookedAt,
	}
	return s.producer.Publish(ctx, s.bookingTopic, strconv.FormatInt(booking.ID, 10), event)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for _, fe := range verrs {
		if fe.StructField() == "ClientEmail" && fe.Tag() == "email" {
			return fmt.Errorf("%w: '%v'", domain.ErrInvalidEmail, fe.Value())
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, fe.Field())
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrInvalidInput, fe.Field())
	}
}

var _ BookingUseCase = (*BookingService)(nil)
