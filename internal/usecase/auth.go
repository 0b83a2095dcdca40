package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/analytics"
	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
	pkgAuth "github.com/polkiloo/cleanorder/internal/pkg/auth"
)

// AuthUseCase manages the bearer token of the signed-in customer.
type AuthUseCase struct {
	client  api.Client
	prefs   repository.PreferenceRepository
	sealer  pkgAuth.Sealer
	tokens  *pkgAuth.TokenHolder
	tracker EventTracker
	logger  *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(client api.Client, prefs repository.PreferenceRepository, sealer pkgAuth.Sealer, tokens *pkgAuth.TokenHolder, tracker EventTracker, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{client: client, prefs: prefs, sealer: sealer, tokens: tokens, tracker: tracker, logger: logger}
}

// Register creates an account and signs in with the issued token.
func (u *AuthUseCase) Register(ctx context.Context, reg model.Registration) error {
	reg, err := ValidateRegistration(reg)
	if err != nil {
		return err
	}

	token, err := u.client.Register(ctx, reg)
	if err != nil {
		u.tracker.Track(ctx, analytics.EventRegisterFailed, "error="+err.Error())
		return err
	}
	if err := u.store(ctx, token); err != nil {
		return err
	}
	u.tracker.Track(ctx, analytics.EventRegisterSuccess, "email="+reg.Email)
	return nil
}

// Login exchanges credentials for a token. A 401 or 403 reply maps to
// ErrInvalidCredentials.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return domainErrors.ErrInvalidCredentials
	}

	token, err := u.client.Login(ctx, email, password)
	if err != nil {
		u.tracker.Track(ctx, analytics.EventLoginFailed, "error="+err.Error())
		var serverErr api.ServerError
		if errors.As(err, &serverErr) && (serverErr.Status == http.StatusUnauthorized || serverErr.Status == http.StatusForbidden) {
			return fmt.Errorf("%w: %s", domainErrors.ErrInvalidCredentials, serverErr.Message)
		}
		return err
	}
	if err := u.store(ctx, token); err != nil {
		return err
	}
	u.tracker.Track(ctx, analytics.EventLoginSuccess, "email="+email)
	return nil
}

// Logout forgets the token in memory and on disk.
func (u *AuthUseCase) Logout(ctx context.Context) error {
	u.tracker.Track(ctx, analytics.EventLogout, "")
	u.tokens.Clear()
	if err := u.prefs.Delete(ctx, model.PrefAuthToken); err != nil {
		return fmt.Errorf("delete stored token: %w", err)
	}
	return nil
}

// Restore loads a previously stored token. A token that cannot be opened,
// for instance after the secret changed, is discarded.
func (u *AuthUseCase) Restore(ctx context.Context) (bool, error) {
	sealed, ok, err := u.prefs.Get(ctx, model.PrefAuthToken)
	if err != nil {
		return false, fmt.Errorf("read stored token: %w", err)
	}
	if !ok || sealed == "" {
		return false, nil
	}

	token, err := u.sealer.Open(sealed)
	if err != nil {
		u.logger.Warn("discard unreadable stored token", slog.String("sealer", u.sealer.Name()), slog.String("error", err.Error()))
		if err := u.prefs.Delete(ctx, model.PrefAuthToken); err != nil {
			return false, fmt.Errorf("delete stored token: %w", err)
		}
		return false, nil
	}
	u.tokens.Set(token)
	return true, nil
}

// Authenticated reports whether a token is held.
func (u *AuthUseCase) Authenticated() bool {
	return u.tokens.Authenticated()
}

func (u *AuthUseCase) store(ctx context.Context, token string) error {
	sealed, err := u.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	if err := u.prefs.Set(ctx, model.PrefAuthToken, sealed); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	u.tokens.Set(token)
	return nil
}
