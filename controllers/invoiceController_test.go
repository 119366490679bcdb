package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Duplicate service lines merge in the summary regardless of how the client
// spelled them, and the room charge is pulled out by its sentinel serviceId.
func TestCreateInvoiceReconciles(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "judy", "user")

	roomID := createRoom(t, app, adminToken, "401", 500000)
	bookingID := createBooking(t, app, userToken, roomID, "2026-09-01", "2026-09-02")

	status, body := doJSON(t, app, http.MethodPost, "/api/invoices", userToken, map[string]any{
		"bookingId": bookingID,
		"items": []map[string]any{
			// Stated total is stale on purpose; the summary recomputes it.
			{"serviceId": bookingSentinelID, "description": "Đặt phòng khách sạn", "quantity": 1, "unitPrice": 500000, "totalPrice": 999},
			{"description": "Spa Treatment", "quantity": 2, "unitPrice": 50000},
			{"description": "  spa treatment ", "quantity": 1, "unitPrice": 60000},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	invoice := dataMap(t, body)
	assert.Equal(t, "unpaid", invoice["status"])

	summary, ok := invoice["summary"].(map[string]any)
	require.True(t, ok, "invoice payload: %v", invoice)

	roomCharge, ok := summary["roomCharge"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 500000.0, roomCharge["totalPrice"])

	services, ok := summary["serviceCharges"].(map[string]any)
	require.True(t, ok)
	require.Len(t, services, 1)
	spa, ok := services["spa treatment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3.0, spa["quantity"])
	assert.Equal(t, 50000.0, spa["unitPrice"]) // first-seen price wins
	assert.Equal(t, 150000.0, spa["totalPrice"])

	assert.Equal(t, 150000.0, summary["serviceTotal"])
	assert.Equal(t, 650000.0, summary["grandTotal"])

	// One invoice per booking.
	status, _ = doJSON(t, app, http.MethodPost, "/api/invoices", userToken, map[string]any{
		"bookingId": bookingID,
		"items":     []map[string]any{{"description": "Anything", "quantity": 1, "unitPrice": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// The booking lookup path returns the same reconciled view.
	status, body = doJSON(t, app, http.MethodGet, "/api/invoices/booking/"+bookingID, userToken, nil)
	require.Equal(t, http.StatusOK, status)
	got := dataMap(t, body)
	gotSummary, ok := got["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 650000.0, gotSummary["grandTotal"])
}

// Without the sentinel, a marker word in the description still identifies
// the room charge.
func TestInvoiceMarkerFallback(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "kate", "user")

	roomID := createRoom(t, app, adminToken, "402", 800000)
	bookingID := createBooking(t, app, userToken, roomID, "2026-09-01", "2026-09-02")

	status, body := doJSON(t, app, http.MethodPost, "/api/invoices", userToken, map[string]any{
		"bookingId": bookingID,
		"items": []map[string]any{
			{"description": "Room Booking deluxe", "quantity": 1, "unitPrice": 800000},
			{"description": "Laundry", "quantity": 1, "unitPrice": 30000},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	summary, ok := dataMap(t, body)["summary"].(map[string]any)
	require.True(t, ok)

	roomCharge, ok := summary["roomCharge"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 800000.0, roomCharge["unitPrice"])
	assert.Equal(t, 830000.0, summary["grandTotal"])
}

func TestInvoiceOwnership(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	ownerToken := registerAndLogin(t, app, "liam", "user")
	otherToken := registerAndLogin(t, app, "mona", "user")

	roomID := createRoom(t, app, adminToken, "403", 100000)
	bookingID := createBooking(t, app, ownerToken, roomID, "2026-09-01", "2026-09-02")

	// A stranger cannot invoice someone else's booking.
	status, _ := doJSON(t, app, http.MethodPost, "/api/invoices", otherToken, map[string]any{
		"bookingId": bookingID,
		"items":     []map[string]any{{"description": "Laundry", "quantity": 1, "unitPrice": 30000}},
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/invoices", ownerToken, map[string]any{
		"bookingId": bookingID,
		"items":     []map[string]any{{"serviceId": bookingSentinelID, "description": "Đặt phòng", "quantity": 1, "unitPrice": 100000}},
	})
	require.Equal(t, http.StatusCreated, status)
	invoiceID, _ := dataMap(t, body)["id"].(string)

	status, _ = doJSON(t, app, http.MethodGet, "/api/invoices/"+invoiceID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// /invoices/all is back office only.
	status, _ = doJSON(t, app, http.MethodGet, "/api/invoices/all", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, body = doJSON(t, app, http.MethodGet, "/api/invoices/all", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, dataList(t, body), 1)

	status, body = doJSON(t, app, http.MethodGet, "/api/invoices/user", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, dataList(t, body), 1)
}

// Payments roll up against the reconciled grand total, not the stored one.
func TestPaymentFlow(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "nina", "user")

	roomID := createRoom(t, app, adminToken, "404", 500000)
	bookingID := createBooking(t, app, userToken, roomID, "2026-09-01", "2026-09-02")

	status, body := doJSON(t, app, http.MethodPost, "/api/invoices", userToken, map[string]any{
		"bookingId": bookingID,
		"items": []map[string]any{
			{"serviceId": bookingSentinelID, "description": "Đặt phòng", "quantity": 1, "unitPrice": 500000},
			{"description": "Minibar", "quantity": 3, "unitPrice": 50000},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	invoiceID, _ := dataMap(t, body)["id"].(string)
	require.NotEmpty(t, invoiceID)

	// Partial payment leaves the invoice unpaid.
	status, body = doJSON(t, app, http.MethodPost, "/api/invoices/"+invoiceID+"/payments", userToken, map[string]any{
		"amount": 300000,
		"method": "cash",
	})
	require.Equal(t, http.StatusCreated, status)
	result := dataMap(t, body)
	inv, ok := result["invoice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "unpaid", inv["status"])
	assert.Equal(t, 300000.0, inv["paidTotal"])

	// Covering the remaining 350000 settles it.
	status, body = doJSON(t, app, http.MethodPost, "/api/invoices/"+invoiceID+"/payments", userToken, map[string]any{
		"amount":    350000,
		"method":    "card",
		"reference": "txn-42",
	})
	require.Equal(t, http.StatusCreated, status)
	inv, ok = dataMap(t, body)["invoice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "paid", inv["status"])
	assert.Equal(t, 650000.0, inv["paidTotal"])

	// No paying a settled invoice.
	status, _ = doJSON(t, app, http.MethodPost, "/api/invoices/"+invoiceID+"/payments", userToken, map[string]any{
		"amount": 1000,
		"method": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/invoices/"+invoiceID+"/payments", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	payments := dataList(t, body)
	require.Len(t, payments, 2)
	first, ok := payments[0].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, first["snapshot"])
}

func TestUpdateInvoiceStatusIsAdminOnly(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "root", "admin")
	userToken := registerAndLogin(t, app, "omar", "user")

	roomID := createRoom(t, app, adminToken, "405", 200000)
	bookingID := createBooking(t, app, userToken, roomID, "2026-09-01", "2026-09-02")

	status, body := doJSON(t, app, http.MethodPost, "/api/invoices", userToken, map[string]any{
		"bookingId": bookingID,
		"items":     []map[string]any{{"serviceId": bookingSentinelID, "description": "Đặt phòng", "quantity": 1, "unitPrice": 200000}},
	})
	require.Equal(t, http.StatusCreated, status)
	invoiceID, _ := dataMap(t, body)["id"].(string)

	status, _ = doJSON(t, app, http.MethodPut, "/api/invoices/"+invoiceID+"/status", userToken, map[string]any{"status": "paid"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = doJSON(t, app, http.MethodPut, "/api/invoices/"+invoiceID+"/status", adminToken, map[string]any{"status": "paid"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "paid", dataMap(t, body)["status"])

	status, _ = doJSON(t, app, http.MethodPut, "/api/invoices/"+invoiceID+"/status", adminToken, map[string]any{"status": "bogus"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
