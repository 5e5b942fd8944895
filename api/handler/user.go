package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/userbase/backend/api/transport"
	"github.com/userbase/backend/domain"
	"github.com/userbase/backend/internal/middleware"
	"github.com/userbase/backend/pkg/httpcontext"
	userUC "github.com/userbase/backend/usecase/user"
)

const defaultListLimit = 100

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Current user profile
// @Tags users
// @Router /api/v1/users/me [get]
func (h *UserHandler) Me(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, middleware.UserFrom(ctx))
}

// @Summary Update own profile
// @Tags users
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateMe(ctx *fasthttp.RequestCtx) {
	var req transport.SelfUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondValidation(ctx, "malformed request body")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProfile(stdCtx, middleware.UserFrom(ctx), userUC.ProfileInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary List users
// @Tags users
// @Router /api/v1/users [get]
func (h *UserHandler) List(ctx *fasthttp.RequestCtx) {
	offset := queryInt(ctx, "skip", 0)
	limit := queryInt(ctx, "limit", defaultListLimit)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.List(stdCtx, offset, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Create a user
// @Tags users
// @Router /api/v1/users [post]
func (h *UserHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.AdminCreateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondValidation(ctx, "malformed request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.respondValidation(ctx, "email and password are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, userUC.CreateInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Read a user by id
// @Tags users
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetByID(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update a user by id
// @Tags users
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.AdminUpdateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondValidation(ctx, "malformed request body")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	target, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	updated, err := h.uc.Update(stdCtx, target, userUC.UpdateInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a user by id
// @Tags users
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	deleted, err := h.uc.Delete(stdCtx, middleware.UserFrom(ctx), id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, deleted)
}

func (h *UserHandler) pathID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondJSON(ctx, http.StatusNotFound,
			transport.NewError(string(domain.ErrCodeNotFound), "user not found", nil))
		return 0, false
	}
	return id, true
}

func queryInt(ctx *fasthttp.RequestCtx, key string, fallback int) int {
	raw := string(ctx.QueryArgs().Peek(key))
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}
