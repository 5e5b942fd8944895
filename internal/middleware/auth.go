package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/userbase/backend/api/transport"
	"github.com/userbase/backend/domain"
	"github.com/userbase/backend/pkg/security"
	"github.com/userbase/backend/repository"
)

const authUserKey = "auth_user"

// Auth resolves the bearer token on a request to a stored user and enforces
// the active/superuser gates. Each guard wraps the previous stage: extract
// token, validate signature and expiry, resolve the subject email, then check
// the relevant flag. Any failure before resolution is a 401; the gates map to
// 400 (inactive) and 403 (not a superuser).
type Auth struct {
	tokens         *security.TokenService
	users          repository.UserRepository
	resolveTimeout time.Duration
	logger         *zap.Logger
}

func NewAuth(tokens *security.TokenService, users repository.UserRepository, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		tokens:         tokens,
		users:          users,
		resolveTimeout: 3 * time.Second,
		logger:         logger,
	}
}

// RequireUser rejects requests without a valid token for an existing user.
func (a *Auth) RequireUser(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, err := a.resolve(ctx)
		if err != nil {
			a.reject(ctx, err)
			return
		}
		ctx.SetUserValue(authUserKey, user)
		next(ctx)
	}
}

// RequireActiveUser additionally rejects disabled accounts.
func (a *Auth) RequireActiveUser(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return a.RequireUser(func(ctx *fasthttp.RequestCtx) {
		if !UserFrom(ctx).Active() {
			a.reject(ctx, domain.ErrInactiveUser)
			return
		}
		next(ctx)
	})
}

// RequireSuperuser additionally rejects non-administrative accounts.
func (a *Auth) RequireSuperuser(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return a.RequireActiveUser(func(ctx *fasthttp.RequestCtx) {
		if !UserFrom(ctx).Superuser() {
			a.reject(ctx, domain.ErrNotSuperuser)
			return
		}
		next(ctx)
	})
}

// OptionalUser resolves the caller when possible and otherwise proceeds
// anonymously. Every authentication failure is downgraded to "no user".
func (a *Auth) OptionalUser(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if user, err := a.resolve(ctx); err == nil {
			ctx.SetUserValue(authUserKey, user)
		}
		next(ctx)
	}
}

// UserFrom returns the user resolved by the auth chain, or nil for anonymous
// requests.
func UserFrom(ctx *fasthttp.RequestCtx) *domain.User {
	if user, ok := ctx.UserValue(authUserKey).(*domain.User); ok {
		return user
	}
	return nil
}

func (a *Auth) resolve(ctx *fasthttp.RequestCtx) (*domain.User, error) {
	token := bearerToken(ctx)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	subject, err := a.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	stdCtx, cancel := context.WithTimeout(context.Background(), a.resolveTimeout)
	defer cancel()

	user, err := a.users.GetByEmail(stdCtx, subject)
	if err != nil {
		// The subject may have been deleted after issuance; tokens are
		// stateless, so this surfaces only here.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		a.logger.Error("auth user lookup failed", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (a *Auth) reject(ctx *fasthttp.RequestCtx, err error) {
	status := http.StatusUnauthorized
	code := domain.ErrCodeUnauthorized
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		code = dErr.Code
		switch dErr.Code {
		case domain.ErrCodeForbidden:
			status = http.StatusForbidden
		case domain.ErrCodeInvalid:
			status = http.StatusBadRequest
		case domain.ErrCodeUnauthorized:
			status = http.StatusUnauthorized
		default:
			status = http.StatusInternalServerError
		}
	} else {
		status = http.StatusInternalServerError
		code = domain.ErrCodeInternal
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBodyString(transport.NewError(string(code), err.Error(), nil).String())
}

func bearerToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
