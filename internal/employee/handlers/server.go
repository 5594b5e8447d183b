// Package handlers provides the HTTP and gRPC transports for the employee
// service, translating between wire messages and domain models.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	v1 "github.com/gartstein/employees/api/employee/v1"
	"github.com/gartstein/employees/internal/employee/models"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// EmployeeController defines the business logic interface
// that the gRPC/HTTP handlers will invoke.
type EmployeeController interface {
	GetAllEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (models.Employee, bool, error)
	AddEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, values models.Employee) (models.Employee, bool, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// Server holds references to both a gRPC server and an HTTP server.
type Server struct {
	grpcServer   *grpc.Server
	httpServer   *http.Server
	logger       *zap.Logger
	grpcEndpoint string
	httpEndpoint string
	grpcListener net.Listener
	httpListener net.Listener
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
// Port 0 picks a free port; see GRPCAddr and HTTPAddr after Listen.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	return &Server{
		grpcServer:   grpc.NewServer(grpcOpts...),
		httpServer:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		logger:       logger,
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// RegisterGRPCHandler registers the gRPC handler for the EmployeeService.
func (s *Server) RegisterGRPCHandler(h *EmployeeHandler) {
	v1.RegisterEmployeeServiceServer(s.grpcServer, h)
}

// RegisterHTTPHandler mounts the employee routes behind the request-id and
// access-log middleware.
func (s *Server) RegisterHTTPHandler(h *HTTPHandler) error {
	mux := runtime.NewServeMux()
	if err := h.Register(mux); err != nil {
		return err
	}

	s.httpServer.Handler = HTTPMiddleware(mux, s.logger)
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

// Listen binds both endpoints without serving yet.
func (s *Server) Listen() error {
	grpcLis, err := net.Listen("tcp", s.grpcEndpoint)
	if err != nil {
		return fmt.Errorf("gRPC listen error: %w", err)
	}
	httpLis, err := net.Listen("tcp", s.httpEndpoint)
	if err != nil {
		grpcLis.Close()
		return fmt.Errorf("HTTP listen error: %w", err)
	}
	s.grpcListener = grpcLis
	s.httpListener = httpLis
	return nil
}

// GRPCAddr is the bound gRPC address, or "" before Listen.
func (s *Server) GRPCAddr() string {
	if s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// HTTPAddr is the bound HTTP address, or "" before Listen.
func (s *Server) HTTPAddr() string {
	if s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Start listens and serves gRPC and HTTP concurrently, returning on the first error.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Serve runs both servers on the listeners bound by Listen until Stop.
func (s *Server) Serve() error {
	if s.grpcListener == nil || s.httpListener == nil {
		return errors.New("server is not listening: call Listen before Serve")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	// Start gRPC Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", s.GRPCAddr()))
		if err := s.grpcServer.Serve(s.grpcListener); err != nil {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	// Start HTTP Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting HTTP server", zap.String("endpoint", s.HTTPAddr()))
		if err := s.httpServer.Serve(s.httpListener); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.grpcServer.GracefulStop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Servers stopped")
}
