package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"roombooking-backend/reconcile"
)

const (
	InvoiceStatusUnpaid    = "unpaid"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice is the backend record of all charges tied to a booking.
// TotalAmount/GrandTotal are the aggregates as written at creation time and
// are display-only; the reconciled summary recomputes its own totals and
// the two may legitimately disagree when the stored values go stale.
type Invoice struct {
	Id        string  `json:"id" gorm:"primaryKey"`
	BookingId string  `json:"bookingId" gorm:"uniqueIndex;not null"`
	Booking   Booking `json:"-" gorm:"foreignKey:BookingId;references:Id"`
	UserId    string  `json:"userId" gorm:"index;not null"`
	User      User    `json:"-" gorm:"foreignKey:UserId;references:Id"`

	// Items keep their insertion order for audit display; order carries no
	// meaning for reconciliation.
	Items []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	TotalAmount float64 `json:"totalAmount" gorm:"type:numeric(12,2)"`
	GrandTotal  float64 `json:"grandTotal" gorm:"type:numeric(12,2)"`

	Status string `json:"status" gorm:"type:VARCHAR(20);default:unpaid"`

	// Payments rollup
	PaidTotal float64 `json:"paidTotal" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"createdAt"`
}

func (invoice *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if invoice.Id == "" {
		invoice.Id = uuid.NewString()
	}
	return
}

// LineItems converts the stored rows into the reconciliation core's input.
func (invoice *Invoice) LineItems() []reconcile.LineItem {
	items := make([]reconcile.LineItem, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, reconcile.LineItem{
			ServiceID:   item.ServiceId,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return items
}

type InvoiceItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   string  `json:"-" gorm:"index"` // fast join
	ServiceId   string  `json:"serviceId" gorm:"index"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice" gorm:"type:numeric(12,2)"`
	TotalPrice  float64 `json:"totalPrice" gorm:"type:numeric(12,2)"`
}

// Payment simulates settling an invoice; Snapshot freezes the reconciled
// summary as of pay time for audit.
type Payment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	InvoiceID string         `json:"invoiceId" gorm:"index:idx_payments_invoice_paid_at,priority:1"`
	Amount    float64        `json:"amount" gorm:"type:numeric(12,2)"`
	Method    string         `json:"method"`
	Reference string         `json:"reference"`
	Snapshot  datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	PaidAt    time.Time      `json:"paidAt" gorm:"index:idx_payments_invoice_paid_at,priority:2"`
	CreatedAt time.Time      `json:"createdAt"`
}
