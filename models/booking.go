package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	Id           string    `json:"id" gorm:"primaryKey"`
	UserId       string    `json:"userId" gorm:"index;not null"`
	User         User      `json:"-" gorm:"foreignKey:UserId;references:Id"`
	RoomId       string    `json:"roomId" gorm:"index;not null"`
	Room         Room      `json:"room" gorm:"foreignKey:RoomId;references:Id"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	TotalPrice   float64   `json:"totalPrice" gorm:"type:numeric(12,2)"`
	Status       string    `json:"status" gorm:"type:VARCHAR(20);default:pending"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.Id == "" {
		booking.Id = uuid.NewString()
	}
	return
}
