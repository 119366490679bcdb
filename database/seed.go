package database

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"roombooking-backend/models"
)

// defaultRoomServiceID matches the sentinel the legacy data was written
// with. Override with ROOM_SERVICE_ID when pointing at another dataset.
const defaultRoomServiceID = "67f40fa8d015835f87d8521e"

// RoomServiceID returns the configured booking-sentinel service ID.
func RoomServiceID() string {
	if v := os.Getenv("ROOM_SERVICE_ID"); v != "" {
		return v
	}
	return defaultRoomServiceID
}

// SeedDefaults ensures the fixed rows the application depends on: the two
// roles and the room-booking sentinel service.
func SeedDefaults() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		roles := []models.Role{
			{RoleName: models.RoleAdmin, Description: "Full access to the back office"},
			{RoleName: models.RoleUser, Description: "Public site customer"},
		}
		for _, role := range roles {
			var existing models.Role
			err := tx.Where("role_name = ?", role.RoleName).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				if err := tx.Create(&role).Error; err != nil {
					return fmt.Errorf("seed role %s: %w", role.RoleName, err)
				}
				continue
			}
			if err != nil {
				return err
			}
		}

		var sentinel models.Service
		err := tx.Where("id = ?", RoomServiceID()).First(&sentinel).Error
		if err == gorm.ErrRecordNotFound {
			sentinel = models.Service{
				Id:          RoomServiceID(),
				Name:        "Đặt phòng",
				Description: "Room booking charge",
				Active:      true,
			}
			if err := tx.Create(&sentinel).Error; err != nil {
				return fmt.Errorf("seed booking service: %w", err)
			}
			return nil
		}
		return err
	})
}
