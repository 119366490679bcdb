package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Floor struct {
	Id      string `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null"`
	Number  int    `json:"number"`
	HotelId string `json:"hotelId" gorm:"index;not null"`
	Hotel   Hotel  `json:"hotel" gorm:"foreignKey:HotelId;references:Id"`
}

func (floor *Floor) BeforeCreate(tx *gorm.DB) (err error) {
	if floor.Id == "" {
		floor.Id = uuid.NewString()
	}
	return
}
