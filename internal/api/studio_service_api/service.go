package studio_service_api

import (
	"context"

	"github.com/Domenick1991/fitstudio/internal/service/booking"
	"github.com/Domenick1991/fitstudio/internal/service/classes"
	"google.golang.org/grpc"
)

const ServiceName = "fitstudio.v1.StudioService"

type ListClassesRequest struct {
	Timezone string `json:"timezone,omitempty"`
}

type ListClassesResponse struct {
	Classes []classes.ClassView `json:"classes"`
}

type ListBookingsRequest struct {
	Email    string `json:"email"`
	Timezone string `json:"timezone,omitempty"`
}

type ListBookingsResponse struct {
	Bookings []booking.BookingView `json:"bookings"`
}

type CreateBookingRequest struct {
	ClassID     int64  `json:"class_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Timezone    string `json:"timezone,omitempty"`
}

type StudioServiceServer interface {
	ListClasses(ctx context.Context, req *ListClassesRequest) (*ListClassesResponse, error)
	ListBookings(ctx context.Context, req *ListBookingsRequest) (*ListBookingsResponse, error)
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*booking.Receipt, error)
}

func RegisterStudioServiceServer(s grpc.ServiceRegistrar, srv StudioServiceServer) {
	s.RegisterService(&StudioServiceDesc, srv)
}

var StudioServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StudioServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListClasses", Handler: listClassesHandler},
		{MethodName: "ListBookings", Handler: listBookingsHandler},
		{MethodName: "CreateBooking", Handler: createBookingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fitstudio/v1/studio.proto",
}

func listClassesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListClassesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StudioServiceServer).ListClasses(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListClasses"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StudioServiceServer).ListClasses(ctx, req.(*ListClassesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listBookingsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListBookingsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StudioServiceServer).ListBookings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListBookings"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StudioServiceServer).ListBookings(ctx, req.(*ListBookingsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func createBookingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateBookingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StudioServiceServer).CreateBooking(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/CreateBooking"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StudioServiceServer).CreateBooking(ctx, req.(*CreateBookingRequest))
	}
	return interceptor(ctx, in, info, handler)
}
