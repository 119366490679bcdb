package controllers

import (
	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type FloorInput struct {
	Name    string `json:"name" validate:"required"`
	Number  int    `json:"number" validate:"gte=0"`
	HotelId string `json:"hotelId" validate:"required"`
}

func CreateFloor(c *fiber.Ctx) error {
	var input FloorInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	db := database.GetDB(c)
	var hotel models.Hotel
	if err := db.First(&hotel, "id = ?", input.HotelId).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "unknown hotel")
	}

	floor := models.Floor{Name: input.Name, Number: input.Number, HotelId: hotel.Id}
	if err := db.Create(&floor).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "could not create floor")
	}
	return respondCreated(c, floor)
}

func GetFloors(c *fiber.Ctx) error {
	var floors []models.Floor
	q := database.GetDB(c).Preload("Hotel")
	if hotelID := c.Query("hotelId"); hotelID != "" {
		q = q.Where("hotel_id = ?", hotelID)
	}
	if err := q.Find(&floors).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list floors")
	}
	return respondData(c, floors)
}

func GetFloor(c *fiber.Ctx) error {
	var floor models.Floor
	if err := database.GetDB(c).Preload("Hotel").First(&floor, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "floor not found")
	}
	return respondData(c, floor)
}

type FloorUpdateInput struct {
	Name    *string `json:"name"`
	Number  *int    `json:"number"`
	HotelId *string `json:"hotelId"`
}

func UpdateFloor(c *fiber.Ctx) error {
	var input FloorUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := database.GetDB(c)
	var floor models.Floor
	if err := db.First(&floor, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "floor not found")
	}

	if input.HotelId != nil {
		var hotel models.Hotel
		if err := db.First(&hotel, "id = ?", *input.HotelId).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "unknown hotel")
		}
	}

	updates := utils.UpdatesFromPtrDTO(&input, map[string]string{"hotelId": "hotel_id"})
	if len(updates) > 0 {
		if err := db.Model(&floor).Updates(updates).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "could not update floor")
		}
	}
	return respondData(c, floor)
}

func DeleteFloor(c *fiber.Ctx) error {
	res := database.GetDB(c).Delete(&models.Floor{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return respondError(c, fiber.StatusBadRequest, "could not delete floor")
	}
	if res.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, "floor not found")
	}
	return respondMessage(c, "floor deleted")
}
