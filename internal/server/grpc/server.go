// Package grpc serves the HopeKeeper record API over gRPC with the JSON
// codec from internal/api, plus the standard health service.
package grpc

import (
	"context"
	"encoding/json"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/hopekeeper/internal/api"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
	"github.com/dmitrijs2005/hopekeeper/internal/server/models"
	"github.com/dmitrijs2005/hopekeeper/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, email string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, email string) ([]byte, error)
	Login(ctx context.Context, email string, verifierCandidate []byte) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type RecordService interface {
	List(ctx context.Context, userID, collection string) ([]json.RawMessage, error)
	Insert(ctx context.Context, userID, collection string, row json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, userID, collection, id string, patch json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, userID, collection, id string) (bool, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	records   RecordService
	jwtSecret []byte
	publicKey string
	health    *health.Server
}

func NewServer(address string, l logging.Logger, us UserService, rs RecordService, secretKey, publicKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		records:   rs,
		jwtSecret: []byte(secretKey),
		publicKey: publicKey,
		health:    health.NewServer(),
	}
}

func (s *Server) newGRPCServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.apiKeyInterceptor,
		s.accessTokenInterceptor,
	))
	api.RegisterHopeKeeperServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newGRPCServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())
	return srv.Serve(listen)
}
