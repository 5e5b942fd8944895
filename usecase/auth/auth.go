package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/userbase/backend/domain"
	"github.com/userbase/backend/pkg/security"
	"github.com/userbase/backend/repository"
)

// UseCase implements the credential flows: login, password recovery and
// password reset.
type UseCase struct {
	users       repository.UserRepository
	throttle    repository.LoginThrottle
	tokens      *security.TokenService
	maxAttempts int
	logger      *zap.Logger
}

func New(users repository.UserRepository, throttle repository.LoginThrottle, tokens *security.TokenService, maxAttempts int, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &UseCase{
		users:       users,
		throttle:    throttle,
		tokens:      tokens,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password produce the same error so the response cannot be used as an
// account-existence oracle. Inactive accounts are rejected after the
// credential check, before any token is issued.
func (uc *UseCase) Login(ctx context.Context, email, password, clientIP string) (string, error) {
	key := fmt.Sprintf("%s|%s", email, clientIP)
	if err := uc.hit(ctx, key); err != nil {
		return "", err
	}

	user, err := uc.authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	if !user.Active() {
		return "", domain.ErrInactiveUser
	}

	token, err := uc.tokens.Issue(user.Email)
	if err != nil {
		return "", err
	}

	if uc.throttle != nil {
		if err := uc.throttle.Reset(ctx, key); err != nil {
			uc.logger.Warn("login throttle reset failed", zap.Error(err))
		}
	}
	return token, nil
}

// RecoverPassword issues a short-lived password-reset token for the account.
// The result is identical whether or not the email is registered. There is no
// mailer wired into this template, so the token is surfaced in the logs for
// out-of-band delivery.
func (uc *UseCase) RecoverPassword(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := uc.tokens.IssuePasswordReset(user.Email)
	if err != nil {
		return err
	}

	uc.logger.Info("password reset token issued",
		zap.String("email", user.Email),
		zap.String("token", token),
	)
	return nil
}

// ResetPassword validates a recovery token and replaces the account password.
func (uc *UseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := uc.tokens.ValidatePasswordReset(token)
	if err != nil {
		return domain.NewError(domain.ErrCodeInvalid, "invalid or expired token")
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewError(domain.ErrCodeInvalid, "invalid or expired token")
		}
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return domain.WrapError(domain.ErrCodeValidation, "invalid password", err)
	}

	_, err = uc.users.Update(ctx, user, repository.UpdateUserParams{HashedPassword: &hash})
	return err
}

func (uc *UseCase) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !security.VerifyPassword(password, user.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// hit records a login attempt. Throttle outages fail open: a broken counter
// must not lock everyone out.
func (uc *UseCase) hit(ctx context.Context, key string) error {
	if uc.throttle == nil {
		return nil
	}
	count, err := uc.throttle.Hit(ctx, key)
	if err != nil {
		uc.logger.Warn("login throttle unavailable", zap.Error(err))
		return nil
	}
	if count > uc.maxAttempts {
		return domain.ErrTooManyAttempts
	}
	return nil
}
