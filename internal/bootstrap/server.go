package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/fitstudio/api"
	"github.com/Domenick1991/fitstudio/config"
	studioapi "github.com/Domenick1991/fitstudio/internal/api/studio_service_api"
	"github.com/Domenick1991/fitstudio/internal/service/booking"
	"github.com/Domenick1991/fitstudio/internal/service/classes"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the HTTP and gRPC servers and blocks until ctx is canceled or a
// server fails. An empty gRPC address skips the gRPC server.
func Run(ctx context.Context, cfg *config.Config, classSvc classes.ClassUseCase, bookingSvc booking.BookingUseCase) error {
	s := newServers(cfg, classSvc, bookingSvc)

	errCh := make(chan error, 2)

	if s.grpcServer != nil {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		logrus.WithField("address", cfg.GRPC.Address).Info("grpc server listening")
		go func() { errCh <- s.grpcServer.Serve(lis) }()
	}

	go func() {
		logrus.WithField("address", cfg.HTTP.Address).Info("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.stop()
		return err
	case <-ctx.Done():
		logrus.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if s.grpcServer != nil {
			s.grpcServer.GracefulStop()
		}
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, classSvc classes.ClassUseCase, bookingSvc booking.BookingUseCase) *Servers {
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(classSvc, bookingSvc, api.RouterOptions{
		DefaultZone:    cfg.Booking.DefaultTimezone,
		RequestTimeout: time.Duration(cfg.HTTP.RequestTimeoutSeconds) * time.Second,
		Swagger:        cfg.HTTP.Swagger,
	})

	s := &Servers{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	if cfg.GRPC.Address != "" {
		s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(studioapi.LoggingInterceptor))
		studioapi.RegisterStudioServiceServer(s.grpcServer, studioapi.NewServer(classSvc, bookingSvc, cfg.Booking.DefaultTimezone))
	}
	return s
}

func (s *Servers) stop() {
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	_ = s.httpServer.Close()
}
