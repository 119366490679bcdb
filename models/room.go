package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Type        string  `json:"type"`
	Price       float64 `json:"price" gorm:"type:numeric(12,2)"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	IsAvailable bool    `json:"isAvailable" gorm:"default:true"`
	FloorId     string  `json:"floorId" gorm:"index"`
	Floor       Floor   `json:"floor" gorm:"foreignKey:FloorId;references:Id"`
}

func (room *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if room.Id == "" {
		room.Id = uuid.NewString()
	}
	return
}
