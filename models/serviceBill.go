package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ServiceBillStatusPending   = "pending"
	ServiceBillStatusPaid      = "paid"
	ServiceBillStatusCancelled = "cancelled"
)

// ServiceBill records add-on services charged to a booking after the fact
// (ordered at the desk rather than at booking time). Its items are appended
// to the booking's invoice on creation.
type ServiceBill struct {
	Id        string            `json:"id" gorm:"primaryKey"`
	BookingId string            `json:"bookingId" gorm:"index;not null"`
	Booking   Booking           `json:"-" gorm:"foreignKey:BookingId;references:Id"`
	UserId    string            `json:"userId" gorm:"index"`
	Items     []ServiceBillItem `json:"items" gorm:"foreignKey:ServiceBillID;constraint:OnDelete:CASCADE"`
	Total     float64           `json:"total" gorm:"type:numeric(12,2)"`
	Status    string            `json:"status" gorm:"type:VARCHAR(20);default:pending"`
	CreatedAt time.Time         `json:"createdAt"`
}

func (bill *ServiceBill) BeforeCreate(tx *gorm.DB) (err error) {
	if bill.Id == "" {
		bill.Id = uuid.NewString()
	}
	return
}

type ServiceBillItem struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	ServiceBillID string  `json:"-" gorm:"index"`
	ServiceId     string  `json:"serviceId" gorm:"not null;index"`
	Service       Service `json:"-" gorm:"foreignKey:ServiceId;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice" gorm:"type:numeric(12,2)"`
	TotalPrice    float64 `json:"totalPrice" gorm:"type:numeric(12,2)"`
}
