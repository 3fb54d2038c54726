package client

import (
	"context"
	"encoding/json"
)

// Client is the client side of the HopeKeeper RPC contract.
type Client interface {
	Close() error
	Register(ctx context.Context, email string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, email string) ([]byte, error)
	Login(ctx context.Context, email string, verifier []byte) (string, error)
	Logout()
	Ping(ctx context.Context) error
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	Insert(ctx context.Context, collection string, row any) (json.RawMessage, error)
	Update(ctx context.Context, collection, id string, patch any) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
}
