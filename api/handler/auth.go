package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/userbase/backend/api/transport"
	"github.com/userbase/backend/pkg/httpcontext"
	authUC "github.com/userbase/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary OAuth2-compatible token login
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	// OAuth2 password flow: form-encoded body, the email travels in the
	// username field.
	args := ctx.PostArgs()
	email := string(args.Peek("username"))
	password := string(args.Peek("password"))
	if email == "" || password == "" {
		h.respondValidation(ctx, "username and password are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, err := h.uc.Login(stdCtx, email, password, ctx.RemoteIP().String())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// @Summary Request a password-reset token
// @Tags auth
// @Router /api/v1/auth/password-recovery [post]
func (h *AuthHandler) RecoverPassword(ctx *fasthttp.RequestCtx) {
	var req transport.PasswordRecoveryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondValidation(ctx, "email is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RecoverPassword(stdCtx, req.Email); err != nil {
		h.respondError(ctx, err)
		return
	}
	// Same response whether or not the account exists.
	h.respondSuccess(ctx, http.StatusOK, transport.MessageResponse{
		Message: "if the account exists, a password recovery token has been issued",
	})
}

// @Summary Reset a password with a recovery token
// @Tags auth
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(ctx *fasthttp.RequestCtx) {
	var req transport.PasswordResetRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Token == "" || req.NewPassword == "" {
		h.respondValidation(ctx, "token and new_password are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ResetPassword(stdCtx, req.Token, req.NewPassword); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.MessageResponse{
		Message: "password updated successfully",
	})
}
