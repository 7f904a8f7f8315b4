package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/middleware"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/dafibh/finwise/finwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to set up auth context without a registered user
func setupAuthContext(c echo.Context, auth0ID, email, name string) {
	setupAuthContextWithUser(c, auth0ID, email, name, uuid.Nil)
}

// Helper to set up auth context with a resolved user ID
func setupAuthContextWithUser(c echo.Context, auth0ID, email, name string, userID uuid.UUID) {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: &middleware.CustomClaims{
			Email: email,
			Name:  name,
		},
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestCallback_NewUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|newuser123", "new@example.com", "New User")

	require.NoError(t, handler.Callback(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response AuthCallbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.IsNewUser)
	assert.Equal(t, "new@example.com", response.User.Email)
	require.NotNil(t, response.User.Name)
	assert.Equal(t, "New User", *response.User.Name)
}

func TestCallback_ExistingUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo))

	existing := &domain.User{ID: uuid.New(), Auth0ID: "auth0|existing123", Email: "existing@example.com"}
	userRepo.AddUser(existing)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|existing123", "existing@example.com", "")

	require.NoError(t, handler.Callback(c))

	var response AuthCallbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.IsNewUser)
	assert.Equal(t, existing.ID.String(), response.User.ID)
}

func TestCallback_MissingAuth0ID(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Callback(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCallback_MissingEmail(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|noemail", "", "No Email")

	require.NoError(t, handler.Callback(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeValidation, problem.Type)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "email", problem.Errors[0].Field)
}

func TestMe(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo))

	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|me", Email: "me@example.com"}
	userRepo.AddUser(user)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, "auth0|me", "me@example.com", "", user.ID)

	require.NoError(t, handler.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response AuthCallbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "me@example.com", response.User.Email)
}

func TestMe_Unregistered(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|ghost", "ghost@example.com", "")

	require.NoError(t, handler.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_UserDeleted(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, "auth0|gone", "gone@example.com", "", uuid.New())

	require.NoError(t, handler.Me(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
