// Package services contains application services for the HopeKeeper client.
// This file defines the authentication service: online and offline login,
// registration, reconnecting an offline session and logout.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hopekeeper/internal/client/client"
	"github.com/dmitrijs2005/hopekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hopekeeper/internal/cryptox"
	"github.com/dmitrijs2005/hopekeeper/internal/dbx"
)

// Metadata keys of the offline login record.
const (
	keyEmail    = "email"
	keyUserID   = "user_id"
	keySalt     = "salt"
	keyVerifier = "verifier"
)

var ErrLocalDataNotAvailable = errors.New("local data unavailable")

// Identity is the signed-in user. Offline is set when the session was
// opened from the local record and the server has not confirmed it yet.
type Identity struct {
	UserID  string
	Email   string
	Offline bool
}

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	OnlineLogin(ctx context.Context, email string, password []byte) (*Identity, error)
	OfflineLogin(ctx context.Context, email string, password []byte) (*Identity, error)
	// Reconnect signs an offline session in with the server using the
	// stored verifier, so the password is not asked again.
	Reconnect(ctx context.Context) (*Identity, error)
	Register(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type offlineRecord struct {
	email, userID  string
	salt, verifier []byte
}

func (a *authService) loadRecord(ctx context.Context) (*offlineRecord, error) {
	values, err := metadata.NewSQLiteRepository(a.db).List(ctx)
	if err != nil {
		return nil, err
	}
	email, salt, verifier := values[keyEmail], values[keySalt], values[keyVerifier]
	if email == nil || salt == nil || verifier == nil {
		return nil, ErrLocalDataNotAvailable
	}
	return &offlineRecord{
		email:    string(email),
		userID:   string(values[keyUserID]),
		salt:     salt,
		verifier: verifier,
	}, nil
}

// OfflineLogin checks password against the verifier saved by the last
// online login for the same email.
func (a *authService) OfflineLogin(ctx context.Context, email string, password []byte) (*Identity, error) {
	rec, err := a.loadRecord(ctx)
	if err != nil {
		return nil, err
	}
	if rec.email != normalizeEmail(email) {
		return nil, client.ErrUnauthorized
	}

	candidate := cryptox.Verifier(password, rec.salt)
	if subtle.ConstantTimeCompare(rec.verifier, candidate) != 1 {
		return nil, client.ErrUnauthorized
	}
	return &Identity{UserID: rec.userID, Email: rec.email, Offline: true}, nil
}

// OnlineLogin authenticates against the server and saves the offline login
// record (email, user id, salt, verifier).
func (a *authService) OnlineLogin(ctx context.Context, email string, password []byte) (*Identity, error) {
	email = normalizeEmail(email)

	salt, err := a.client.GetSalt(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	verifier := cryptox.Verifier(password, salt)
	userID, err := a.client.Login(ctx, email, verifier)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveRecord(ctx, &offlineRecord{email: email, userID: userID, salt: salt, verifier: verifier}); err != nil {
		return nil, fmt.Errorf("offline data saving error: %w", err)
	}
	return &Identity{UserID: userID, Email: email}, nil
}

func (a *authService) Reconnect(ctx context.Context) (*Identity, error) {
	rec, err := a.loadRecord(ctx)
	if err != nil {
		return nil, err
	}
	userID, err := a.client.Login(ctx, rec.email, rec.verifier)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return &Identity{UserID: userID, Email: rec.email}, nil
}

func (a *authService) saveRecord(ctx context.Context, rec *offlineRecord) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for key, value := range map[string][]byte{
			keyEmail:    []byte(rec.email),
			keyUserID:   []byte(rec.userID),
			keySalt:     rec.salt,
			keyVerifier: rec.verifier,
		} {
			if err := repo.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Register creates a new account on the server with a fresh salt.
func (a *authService) Register(ctx context.Context, email string, password []byte) error {
	salt := cryptox.NewSalt()
	return a.client.Register(ctx, normalizeEmail(email), salt, cryptox.Verifier(password, salt))
}

// Logout forgets the token pair and the offline login record. Local
// preferences stay on the device.
func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range []string{keyEmail, keyUserID, keySalt, keyVerifier} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}
