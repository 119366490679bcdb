package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Hotel struct {
	Id          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;unique"`
	Address     string `json:"address" gorm:"not null"`
	Description string `json:"description"`
}

func (hotel *Hotel) BeforeCreate(tx *gorm.DB) (err error) {
	if hotel.Id == "" {
		hotel.Id = uuid.NewString()
	}
	return
}
