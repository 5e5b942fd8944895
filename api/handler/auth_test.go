package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/userbase/backend/api/handler"
	"github.com/userbase/backend/pkg/security"
	"github.com/userbase/backend/repository"
	authUC "github.com/userbase/backend/usecase/auth"
)

func newAuthHandler(repo *fakeUserRepo) (*apiHandler.AuthHandler, *security.TokenService) {
	tokens := security.NewTokenService("handler-test-secret", "userbase-test", time.Hour, time.Minute)
	uc := authUC.New(repo, nil, tokens, 10, nil)
	return apiHandler.NewAuthHandler(uc, nil, nil), tokens
}

func formRequest(body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
	ctx.Request.SetBodyString(body)
	return ctx
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "a@x.com", false)
	h, tokens := newAuthHandler(repo)

	ctx := formRequest("username=a%40x.com&password=password123")
	h.Login(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	data := decodeEnvelope(t, ctx)["data"].(map[string]interface{})
	assert.Equal(t, "bearer", data["token_type"])

	token, ok := data["access_token"].(string)
	require.True(t, ok)

	subject, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "a@x.com", false)
	h, _ := newAuthHandler(repo)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: "username=a%40x.com&password=wrong"},
		{name: "unknown email", body: "username=nobody%40x.com&password=password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := formRequest(tt.body)
			h.Login(ctx)

			assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
			assert.Contains(t, string(ctx.Response.Body()), "incorrect email or password")
		})
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "a@x.com", false)
	inactive := false
	_, err := repo.Update(context.Background(), user, repository.UpdateUserParams{IsActive: &inactive})
	require.NoError(t, err)

	h, _ := newAuthHandler(repo)

	ctx := formRequest("username=a%40x.com&password=password123")
	h.Login(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "inactive user")
	assert.NotContains(t, string(ctx.Response.Body()), "access_token")
}

func TestLogin_MissingFields(t *testing.T) {
	h, _ := newAuthHandler(newFakeUserRepo())

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "missing password", body: "username=a%40x.com"},
		{name: "missing username", body: "password=password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := formRequest(tt.body)
			h.Login(ctx)
			assert.Equal(t, http.StatusUnprocessableEntity, ctx.Response.StatusCode())
		})
	}
}

func TestRecoverPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "a@x.com", false)
	h, _ := newAuthHandler(repo)

	// Registered and unregistered emails get the same answer.
	for _, email := range []string{"a@x.com", "nobody@x.com"} {
		ctx := jsonRequest(`{"email":"` + email + `"}`)
		h.RecoverPassword(ctx)
		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	}
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "a@x.com", false)
	h, tokens := newAuthHandler(repo)

	reset, err := tokens.IssuePasswordReset("a@x.com")
	require.NoError(t, err)

	ctx := jsonRequest(`{"token":"` + reset + `","new_password":"brand-new"}`)
	h.ResetPassword(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	// Old password no longer works, the new one does.
	ctx = formRequest("username=a%40x.com&password=password123")
	h.Login(ctx)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())

	ctx = formRequest("username=a%40x.com&password=brand-new")
	h.Login(ctx)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
}

func TestResetPassword_InvalidToken(t *testing.T) {
	h, _ := newAuthHandler(newFakeUserRepo())

	ctx := jsonRequest(`{"token":"garbage","new_password":"brand-new"}`)
	h.ResetPassword(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "invalid or expired token")
}
