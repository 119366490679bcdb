package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/routes"
)

var testDBSeq atomic.Int64

// setupApp wires the full route table against a fresh in-memory database.
// The shared-cache DSN lets every pooled connection see the same database,
// which the concurrent invoice fan-out depends on.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	os.Setenv("JWT_SECRET_KEY", "test-secret")

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Hotel{}, &models.Floor{}, &models.Room{},
		&models.Service{}, &models.Booking{},
		&models.Invoice{}, &models.InvoiceItem{},
		&models.ServiceBill{}, &models.ServiceBillItem{},
		&models.Payment{}, &models.IdempotencyKey{},
	))

	database.DB = db
	require.NoError(t, database.SeedDefaults())

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(app)
	return app
}

// doJSON performs a request and decodes the envelope into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

// registerAndLogin provisions a user with the given role and returns a token.
func registerAndLogin(t *testing.T, app *fiber.App, username, role string) string {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":         username,
		"email":            fmt.Sprintf("%s@example.com", username),
		"password":         "secret123",
		"password_confirm": "secret123",
		"role":             role,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "login response: %v", body)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected object data, got: %v", body)
	return data
}

func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	require.True(t, ok, "expected array data, got: %v", body)
	return data
}

// bookingSentinelID is the seeded room-booking service (see database.SeedDefaults).
const bookingSentinelID = "67f40fa8d015835f87d8521e"

func createRoom(t *testing.T, app *fiber.App, adminToken, name string, price float64) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/rooms", adminToken, map[string]any{
		"name":  name,
		"type":  "standard",
		"price": price,
	})
	require.Equal(t, http.StatusCreated, status)
	id, _ := dataMap(t, body)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func createBooking(t *testing.T, app *fiber.App, token, roomID, checkIn, checkOut string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/bookings", token, map[string]any{
		"roomId":       roomID,
		"checkInDate":  checkIn,
		"checkOutDate": checkOut,
	})
	require.Equal(t, http.StatusCreated, status)
	id, _ := dataMap(t, body)["id"].(string)
	require.NotEmpty(t, id)
	return id
}
