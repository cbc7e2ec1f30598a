package classes

import (
	"context"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/Domenick1991/fitstudio/internal/timezone"
	"github.com/sirupsen/logrus"
)

type ClassUseCase interface {
	ListClasses(ctx context.Context, zone string) ([]ClassView, error)
}

type ClassReader interface {
	ListClassesWithCapacity(ctx context.Context) ([]domain.ClassSession, error)
}

// Cache holds the bookable list between bookings. SetClasses must drop the
// write when the generation changed since ClassesGeneration was read.
type Cache interface {
	GetClasses(ctx context.Context) ([]domain.ClassSession, error)
	ClassesGeneration(ctx context.Context) (int64, error)
	SetClasses(ctx context.Context, classes []domain.ClassSession, generation int64) error
}

// ClassView is a bookable class with its start time rendered in the caller's zone.
type ClassView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DateTime       string `json:"datetime"`
	Instructor     string `json:"instructor"`
	AvailableSlots int    `json:"available_slots"`
}

type ClassService struct {
	repo  ClassReader
	cache Cache
}

type ClassServiceOption func(*ClassService)

func WithCache(cache Cache) ClassServiceOption {
	return func(s *ClassService) {
		s.cache = cache
	}
}

func NewClassService(repo ClassReader, opts ...ClassServiceOption) *ClassService {
	service := &ClassService{repo: repo}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ListClasses returns upcoming classes that still have free slots, earliest
// first. An empty schedule is not an error.
func (s *ClassService) ListClasses(ctx context.Context, zone string) ([]ClassView, error) {
	loc, err := timezone.Load(zone)
	if err != nil {
		return nil, err
	}

	sessions, err := s.bookable(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ClassView, 0, len(sessions))
	for _, c := range sessions {
		// a cached list can lag behind the last booking
		if !c.HasCapacity() {
			continue
		}
		views = append(views, ClassView{
			ID:             c.ID,
			Name:           c.Name,
			DateTime:       timezone.FormatIn(c.StartTime, loc),
			Instructor:     c.Instructor,
			AvailableSlots: c.AvailableSlots,
		})
	}
	return views, nil
}

func (s *ClassService) bookable(ctx context.Context) ([]domain.ClassSession, error) {
	if s.cache == nil {
		return s.repo.ListClassesWithCapacity(ctx)
	}

	cached, err := s.cache.GetClasses(ctx)
	if err != nil {
		logrus.WithError(err).Warn("classes cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	// read before the store so a booking committed in between wins
	generation, genErr := s.cache.ClassesGeneration(ctx)
	if genErr != nil {
		logrus.WithError(genErr).Warn("classes cache generation read failed")
	}

	sessions, err := s.repo.ListClassesWithCapacity(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if err := s.cache.SetClasses(ctx, sessions, generation); err != nil {
			logrus.WithError(err).Warn("classes cache write failed")
		}
	}
	return sessions, nil
}

var _ ClassUseCase = (*ClassService)(nil)
