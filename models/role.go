package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Role is resolved once at login; downstream code only ever sees the
// role name carried in the JWT claims.
type Role struct {
	Id          string `json:"id" gorm:"primaryKey"`
	RoleName    string `json:"roleName" gorm:"unique;not null"`
	Description string `json:"description"`
}

func (role *Role) BeforeCreate(tx *gorm.DB) (err error) {
	if role.Id == "" {
		role.Id = uuid.NewString()
	}
	return
}
