package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingLifecycle(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "dave", "user")

	roomID := createRoom(t, app, adminToken, "101", 500000)

	// Two nights at 500000.
	status, body := doJSON(t, app, http.MethodPost, "/api/bookings", userToken, map[string]any{
		"roomId":       roomID,
		"checkInDate":  "2026-09-01",
		"checkOutDate": "2026-09-03",
	})
	require.Equal(t, http.StatusCreated, status)
	booking := dataMap(t, body)
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, 1000000.0, booking["totalPrice"])
	bookingID, _ := booking["id"].(string)

	// The room is now taken.
	status, _ = doJSON(t, app, http.MethodPost, "/api/bookings", userToken, map[string]any{
		"roomId":       roomID,
		"checkInDate":  "2026-09-05",
		"checkOutDate": "2026-09-06",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Back office confirms.
	status, body = doJSON(t, app, http.MethodPut, "/api/bookings/"+bookingID+"/confirm", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "confirmed", dataMap(t, body)["status"])

	// Cancelling frees the room again.
	status, body = doJSON(t, app, http.MethodPut, "/api/bookings/"+bookingID+"/cancel", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cancelled", dataMap(t, body)["status"])

	status, body = doJSON(t, app, http.MethodGet, "/api/rooms/"+roomID, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, dataMap(t, body)["isAvailable"])
}

func TestBookingRejectsBadDates(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "erin", "user")
	roomID := createRoom(t, app, adminToken, "102", 300000)

	status, _ := doJSON(t, app, http.MethodPost, "/api/bookings", userToken, map[string]any{
		"roomId":       roomID,
		"checkInDate":  "2026-09-03",
		"checkOutDate": "2026-09-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/bookings", userToken, map[string]any{
		"roomId":       roomID,
		"checkInDate":  "not-a-date",
		"checkOutDate": "2026-09-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBookingOwnership(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	ownerToken := registerAndLogin(t, app, "frank", "user")
	otherToken := registerAndLogin(t, app, "grace", "user")

	roomID := createRoom(t, app, adminToken, "103", 400000)
	bookingID := createBooking(t, app, ownerToken, roomID, "2026-09-01", "2026-09-02")

	status, _ := doJSON(t, app, http.MethodGet, "/api/bookings/"+bookingID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/bookings/"+bookingID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// Admin sees everything.
	status, _ = doJSON(t, app, http.MethodGet, "/api/bookings/"+bookingID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

// The user listing loads invoices concurrently; bookings without an invoice
// come back with it null rather than failing the call.
func TestGetUserBookingsWithInvoices(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "holly", "user")

	roomA := createRoom(t, app, adminToken, "201", 500000)
	roomB := createRoom(t, app, adminToken, "202", 700000)
	bookingA := createBooking(t, app, userToken, roomA, "2026-09-01", "2026-09-02")
	bookingB := createBooking(t, app, userToken, roomB, "2026-09-01", "2026-09-02")

	// Only booking A gets an invoice.
	status, _ := doJSON(t, app, http.MethodPost, "/api/invoices", userToken, map[string]any{
		"bookingId": bookingA,
		"items": []map[string]any{
			{"serviceId": bookingSentinelID, "description": "Đặt phòng khách sạn", "quantity": 1, "unitPrice": 500000},
			{"description": "Minibar", "quantity": 2, "unitPrice": 50000},
		},
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/bookings/user", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	results := dataList(t, body)
	require.Len(t, results, 2)

	byID := map[string]map[string]any{}
	for _, raw := range results {
		entry, ok := raw.(map[string]any)
		require.True(t, ok)
		id, _ := entry["id"].(string)
		byID[id] = entry
	}

	withInvoice := byID[bookingA]
	require.NotNil(t, withInvoice["invoice"])
	summary, ok := withInvoice["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 600000.0, summary["grandTotal"])

	bare := byID[bookingB]
	assert.Nil(t, bare["invoice"])
	assert.Nil(t, bare["summary"])
}

// Replaying a mutating request with the same Idempotency-Key returns the
// stored response without creating a second booking.
func TestBookingIdempotencyReplay(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "ivan", "user")
	roomID := createRoom(t, app, adminToken, "301", 250000)

	payload, err := json.Marshal(map[string]any{
		"roomId":       roomID,
		"checkInDate":  "2026-09-01",
		"checkOutDate": "2026-09-02",
	})
	require.NoError(t, err)

	send := func() (int, map[string]any) {
		req, err := http.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+userToken)
		req.Header.Set("Idempotency-Key", "book-once-1")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		out := map[string]any{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	status1, body1 := send()
	require.Equal(t, http.StatusCreated, status1)
	firstID := dataMap(t, body1)["id"]

	status2, body2 := send()
	require.Equal(t, http.StatusCreated, status2)
	assert.Equal(t, firstID, dataMap(t, body2)["id"])

	// Still exactly one booking.
	status, body := doJSON(t, app, http.MethodGet, "/api/bookings/user", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, dataList(t, body), 1)
}
