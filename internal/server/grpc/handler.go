package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/hopekeeper/internal/api"
	"github.com/dmitrijs2005/hopekeeper/internal/common"
)

// toStatus maps service errors to gRPC codes. Unexpected errors are logged
// and hidden behind a generic Internal message.
func (s *Server) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrUnknownCollection),
		errors.Is(err, common.ErrInvalidRow),
		errors.Is(err, common.ErrInvalidPatch):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *Server) userID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

func (s *Server) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	u, err := s.users.Register(ctx, req.Email, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &api.RegisterResponse{UserID: u.ID}, nil
}

func (s *Server) GetSalt(ctx context.Context, req *api.GetSaltRequest) (*api.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Email)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetSaltResponse{Salt: salt}, nil
}

func (s *Server) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	u, tokens, err := s.users.Login(ctx, req.Email, req.VerifierCandidate)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.LoginResponse{UserID: u.ID, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *Server) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *Server) List(ctx context.Context, req *api.ListRequest) (*api.ListResponse, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.records.List(ctx, uid, req.Collection)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListResponse{Rows: rows}, nil
}

func (s *Server) Insert(ctx context.Context, req *api.InsertRequest) (*api.InsertResponse, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	row, err := s.records.Insert(ctx, uid, req.Collection, req.Row)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.InsertResponse{Row: row}, nil
}

func (s *Server) Update(ctx context.Context, req *api.UpdateRequest) (*api.UpdateResponse, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	row, err := s.records.Update(ctx, uid, req.Collection, req.ID, req.Patch)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.UpdateResponse{Row: row}, nil
}

func (s *Server) Delete(ctx context.Context, req *api.DeleteRequest) (*api.DeleteResponse, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.records.Delete(ctx, uid, req.Collection, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.DeleteResponse{Deleted: deleted}, nil
}
