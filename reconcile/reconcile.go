// Package reconcile turns an invoice's raw line items into a clean,
// display-ready summary: the room charge, deduplicated add-on service
// charges and the grand total. It is a pure transformation with no I/O;
// every page that renders booking or invoice information goes through it.
package reconcile

import "strings"

// UnknownServiceKey groups items whose description is empty or missing.
// They are kept rather than dropped so no charge disappears from the total.
const UnknownServiceKey = "unknown service"

// defaultRoomMarkers are the substrings that identify a room-booking line
// when the backend did not stamp it with the sentinel service ID.
var defaultRoomMarkers = []string{"đặt phòng", "booking"}

// LineItem is one charge recorded on an invoice. TotalPrice as stored
// upstream can be stale; Reconcile always recomputes it from
// UnitPrice and Quantity.
type LineItem struct {
	ServiceID   string  `json:"serviceId"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Reconciled is the derived view of an invoice. It is built fresh per
// request and never persisted (except as an audit snapshot on payments).
type Reconciled struct {
	// RoomCharge is the single room-booking line, nil when none was found.
	RoomCharge *LineItem `json:"roomCharge,omitempty"`
	// ServiceCharges maps the normalized description (lower-cased, trimmed)
	// to the merged line for that service.
	ServiceCharges map[string]LineItem `json:"serviceCharges"`
	ServiceTotal   float64             `json:"serviceTotal"`
	GrandTotal     float64             `json:"grandTotal"`
}

// Reconciler classifies and merges invoice line items.
// BookingServiceID is the backend-assigned sentinel identifying the room
// charge; it is configuration, never derived from the data.
type Reconciler struct {
	BookingServiceID string
	RoomMarkers      []string
}

// New returns a Reconciler for the given booking sentinel with the default
// room marker words.
func New(bookingServiceID string) *Reconciler {
	return &Reconciler{
		BookingServiceID: bookingServiceID,
		RoomMarkers:      defaultRoomMarkers,
	}
}

func (r *Reconciler) isRoomCharge(item LineItem) bool {
	if r.BookingServiceID != "" && item.ServiceID == r.BookingServiceID {
		return true
	}
	desc := normalizeKey(item.Description)
	for _, marker := range r.RoomMarkers {
		if marker != "" && strings.Contains(desc, marker) {
			return true
		}
	}
	return false
}

func normalizeKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// Reconcile scans items once and buckets every one of them: the first
// room-booking match (sentinel first, marker words as fallback) becomes the
// room charge; any later room-like item folds into the service path like a
// regular service. Service lines sharing a normalized description merge:
// quantities sum, the first-seen unit price wins, and the group total is
// recomputed as unitPrice × summed quantity on every merge step rather than
// accumulated, so stale stated totals never leak through.
//
// Reconcile never fails: an empty list yields an empty summary, a missing
// quantity counts as 1 and a missing unit price as 0.
func (r *Reconciler) Reconcile(items []LineItem) Reconciled {
	out := Reconciled{ServiceCharges: make(map[string]LineItem, len(items))}

	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		if out.RoomCharge == nil && r.isRoomCharge(item) {
			rc := LineItem{
				ServiceID:   item.ServiceID,
				Description: item.Description,
				Quantity:    qty,
				UnitPrice:   item.UnitPrice,
				TotalPrice:  item.UnitPrice * float64(qty),
			}
			out.RoomCharge = &rc
			continue
		}

		key := normalizeKey(item.Description)
		if key == "" {
			key = UnknownServiceKey
		}

		group, ok := out.ServiceCharges[key]
		if !ok {
			group = LineItem{
				ServiceID:   item.ServiceID,
				Description: item.Description,
				UnitPrice:   item.UnitPrice,
			}
		}
		group.Quantity += qty
		group.TotalPrice = group.UnitPrice * float64(group.Quantity)
		out.ServiceCharges[key] = group
	}

	for _, group := range out.ServiceCharges {
		out.ServiceTotal += group.TotalPrice
	}
	out.GrandTotal = out.ServiceTotal
	if out.RoomCharge != nil {
		out.GrandTotal += out.RoomCharge.TotalPrice
	}
	return out
}
