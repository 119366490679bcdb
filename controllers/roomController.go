package controllers

import (
	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type RoomInput struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	FloorId     string  `json:"floorId"`
}

func CreateRoom(c *fiber.Ctx) error {
	var input RoomInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	db := database.GetDB(c)
	if input.FloorId != "" {
		var floor models.Floor
		if err := db.First(&floor, "id = ?", input.FloorId).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "unknown floor")
		}
	}

	room := models.Room{
		Name:        input.Name,
		Type:        input.Type,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsAvailable: true,
		FloorId:     input.FloorId,
	}
	if err := db.Create(&room).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "could not create room")
	}
	return respondCreated(c, room)
}

func GetRooms(c *fiber.Ctx) error {
	var rooms []models.Room
	if err := database.GetDB(c).Preload("Floor").Preload("Floor.Hotel").Find(&rooms).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list rooms")
	}
	return respondData(c, rooms)
}

func GetAvailableRooms(c *fiber.Ctx) error {
	var rooms []models.Room
	if err := database.GetDB(c).Preload("Floor").Where("is_available = ?", true).Find(&rooms).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list rooms")
	}
	return respondData(c, rooms)
}

func GetRoom(c *fiber.Ctx) error {
	var room models.Room
	if err := database.GetDB(c).Preload("Floor").Preload("Floor.Hotel").First(&room, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "room not found")
	}
	return respondData(c, room)
}

type RoomUpdateInput struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	IsAvailable *bool    `json:"isAvailable"`
	FloorId     *string  `json:"floorId"`
}

func UpdateRoom(c *fiber.Ctx) error {
	var input RoomUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := database.GetDB(c)
	var room models.Room
	if err := db.First(&room, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "room not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input, map[string]string{
		"imageUrl":    "image_url",
		"isAvailable": "is_available",
		"floorId":     "floor_id",
	})
	if len(updates) > 0 {
		if err := db.Model(&room).Updates(updates).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "could not update room")
		}
	}
	return respondData(c, room)
}

func DeleteRoom(c *fiber.Ctx) error {
	res := database.GetDB(c).Delete(&models.Room{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return respondError(c, fiber.StatusBadRequest, "could not delete room")
	}
	if res.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, "room not found")
	}
	return respondMessage(c, "room deleted")
}
