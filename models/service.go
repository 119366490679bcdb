package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an add-on offered alongside a room booking (breakfast, spa,
// late checkout, ...). The room-booking charge itself is represented by a
// seeded sentinel service whose ID comes from configuration.
type Service struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"type:numeric(12,2)"`
	Active      bool    `json:"active"`
}

func (service *Service) BeforeCreate(tx *gorm.DB) (err error) {
	// Seeded services (the booking sentinel) carry a fixed ID.
	if service.Id == "" {
		service.Id = uuid.NewString()
	}
	return
}
