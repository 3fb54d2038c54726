package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/client/client"
	"github.com/dmitrijs2005/hopekeeper/internal/client/services"
	"github.com/dmitrijs2005/hopekeeper/internal/common"
)

// getSimpleText and getPassword can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Register(cmd.Context())
		},
	}
}

func (a *App) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in (works offline after one online login)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Login(cmd.Context())
		},
	}
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Sign out and forget the offline login",
		Args:        cobra.NoArgs,
		Annotations: loginRequired(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Logout(cmd.Context())
		},
	}
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connection, account and queue state",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			mode := a.Mode()
			if mode == "" {
				mode = "unknown"
			}
			a.printf("Connection: %s\n", mode)
			id := a.Identity()
			if id == nil {
				a.println("Not logged in")
				return
			}
			a.printf("Logged in as %s\n", id.Email)
			if id.Offline {
				a.println("Offline session: changes are queued until the server is reachable")
			}
			a.printf("Queued changes: %d\n", a.queue.Len(cmd.Context(), id.UserID))
		},
	}
}

// Register prompts for credentials and creates an account. The password is
// wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("an account with this email already exists")
		}
		return err
	}

	a.println("Success! You can log in now.")
	return nil
}

// Login tries the server first and falls back to the offline record when
// the server is unavailable. The resulting Mode is online, offline, or
// disabled when neither worked.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.authService.OnlineLogin(ctx, email, password)
	if err == nil {
		a.logger.Info(ctx, "login successful")
		a.setMode(ModeOnline)
		a.setIdentity(id)
		a.resume(ctx)
		a.printf("Welcome back, %s!\n", id.Email)
		return nil
	}

	if !errors.Is(err, client.ErrUnavailable) {
		a.logger.Warn(ctx, "login unsuccessful", "error", err)
		return errors.New("login failed: check your email and password")
	}

	a.logger.Info(ctx, "server unavailable, trying offline login")
	id, err = a.authService.OfflineLogin(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "offline login unsuccessful", "error", err)
		a.setMode(ModeDisabled)
		if errors.Is(err, services.ErrLocalDataNotAvailable) {
			return errors.New("server unavailable and no offline login on this device yet")
		}
		return errors.New("login failed: check your email and password")
	}

	a.setMode(ModeOffline)
	a.setIdentity(id)
	a.printf("Welcome back, %s! You are offline; changes will sync later.\n", id.Email)
	return nil
}

// Logout forgets the session and the offline login record. Changes queued
// by the account being signed out are dropped too; other accounts' queued
// changes stay on the device.
func (a *App) Logout(ctx context.Context) error {
	owner := a.userID()
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	if err := a.queue.Clear(ctx, owner); err != nil {
		a.logger.Error(ctx, "clear offline queue", "error", err)
	}
	a.setIdentity(nil)
	a.println("Logged out.")
	return nil
}
