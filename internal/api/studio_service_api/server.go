package studio_service_api

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/Domenick1991/fitstudio/internal/service/booking"
	"github.com/Domenick1991/fitstudio/internal/service/classes"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server exposes the class and booking use cases over gRPC.
type Server struct {
	classes     classes.ClassUseCase
	bookings    booking.BookingUseCase
	defaultZone string
}

func NewServer(classSvc classes.ClassUseCase, bookingSvc booking.BookingUseCase, defaultZone string) *Server {
	return &Server{classes: classSvc, bookings: bookingSvc, defaultZone: defaultZone}
}

func (s *Server) ListClasses(ctx context.Context, req *ListClassesRequest) (*ListClassesResponse, error) {
	views, err := s.classes.ListClasses(ctx, s.zone(req.Timezone))
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListClassesResponse{Classes: views}, nil
}

func (s *Server) ListBookings(ctx context.Context, req *ListBookingsRequest) (*ListBookingsResponse, error) {
	if req.Email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}
	views, err := s.bookings.ListBookingsForClient(ctx, req.Email, s.zone(req.Timezone))
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListBookingsResponse{Bookings: views}, nil
}

func (s *Server) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*booking.Receipt, error) {
	receipt, err := s.bookings.CreateBooking(ctx, booking.CreateBookingInput{
		ClassID:     req.ClassID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	}, s.zone(req.Timezone))
	if err != nil {
		return nil, toStatus(err)
	}
	return receipt, nil
}

func (s *Server) zone(requested string) string {
	if requested == "" {
		return s.defaultZone
	}
	return requested
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrClassNotFound), errors.Is(err, domain.ErrNoBookings):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrNoCapacity):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrDuplicateBooking):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		logrus.WithError(err).Error("grpc request failed")
		return status.Error(codes.Internal, "internal server error")
	}
}

// LoggingInterceptor logs every unary call with its status code.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	entry := logrus.WithFields(logrus.Fields{
		"method":   info.FullMethod,
		"code":     status.Code(err).String(),
		"duration": time.Since(start),
	})
	if err != nil {
		entry.Warn("grpc call failed")
	} else {
		entry.Info("grpc call processed")
	}
	return resp, err
}

var _ StudioServiceServer = (*Server)(nil)
