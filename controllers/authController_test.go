package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":         "alice",
		"email":            "alice@example.com",
		"password":         "secret123",
		"password_confirm": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)
	created := dataMap(t, body)
	assert.Equal(t, "alice", created["username"])
	assert.NotContains(t, body["data"], "password")

	// Same username again is rejected.
	status, body = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":         "alice",
		"email":            "alice2@example.com",
		"password":         "secret123",
		"password_confirm": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	// Wrong password does not log in.
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	login := dataMap(t, body)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)
	user, _ := login["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "user", user["role"])

	// Email works as the login identifier too.
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, status)

	// Profile requires the bearer token.
	status, _ = doJSON(t, app, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", dataMap(t, body)["username"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	// Mismatched confirmation.
	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":         "bob",
		"email":            "bob@example.com",
		"password":         "secret123",
		"password_confirm": "other",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Missing email fails struct validation.
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":         "bob",
		"password":         "secret123",
		"password_confirm": "secret123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
}

func TestAdminGate(t *testing.T) {
	app := setupApp(t)
	userToken := registerAndLogin(t, app, "carol", "user")
	adminToken := registerAndLogin(t, app, "root", "admin")

	// Plain users cannot reach the back office.
	status, _ := doJSON(t, app, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, dataList(t, body), 2)
}
