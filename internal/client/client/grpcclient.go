package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/hopekeeper/internal/api"
	"github.com/dmitrijs2005/hopekeeper/internal/common"
)

const saltTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	publicKey   string
	dialOptions []grpc.DialOption

	conn   *grpc.ClientConn
	client api.HopeKeeperClient
	health healthpb.HealthClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withMetadata(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(key, value)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

// authInterceptor attaches the api key and the access token. When the
// server reports an expired access token it refreshes the pair once and
// retries the call.
func (s *GRPCClient) authInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withMetadata(ctx, common.APIKeyHeaderName, s.publicKey)
	if api.PublicMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	access, refresh := s.tokens()
	err := invoker(withMetadata(ctx, common.AccessTokenHeaderName, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withMetadata(ctx, common.AccessTokenHeaderName, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewHopeKeeperClient prepares a lazy connection to endpointURL. Extra dial
// options are appended after the defaults.
func NewHopeKeeperClient(endpointURL, publicKey string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, publicKey: publicKey, dialOptions: opts}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.authInterceptor),
	}, s.dialOptions...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewHopeKeeperClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, email string, salt []byte, verifier []byte) error {
	_, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Salt: salt, Verifier: verifier})
	return s.mapError(err)
}

func (s *GRPCClient) GetSalt(ctx context.Context, email string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, saltTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &api.GetSaltRequest{Email: email})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

// Login stores the issued token pair and returns the user id.
func (s *GRPCClient) Login(ctx context.Context, email string, verifier []byte) (string, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, VerifierCandidate: verifier})
	if err != nil {
		return "", s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.UserID, nil
}

// Logout forgets the token pair.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

// Ping asks the standard health service whether the server is serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	resp, err := s.client.List(ctx, &api.ListRequest{Collection: collection})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Rows, nil
}

func (s *GRPCClient) Insert(ctx context.Context, collection string, row any) (json.RawMessage, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode %s row: %w", collection, err)
	}
	resp, err := s.client.Insert(ctx, &api.InsertRequest{Collection: collection, Row: raw})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Row, nil
}

func (s *GRPCClient) Update(ctx context.Context, collection, id string, patch any) (json.RawMessage, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode %s patch: %w", collection, err)
	}
	resp, err := s.client.Update(ctx, &api.UpdateRequest{Collection: collection, ID: id, Patch: raw})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Row, nil
}

func (s *GRPCClient) Delete(ctx context.Context, collection, id string) (bool, error) {
	resp, err := s.client.Delete(ctx, &api.DeleteRequest{Collection: collection, ID: id})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Deleted, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
