package controllers

import (
	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type HotelInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Address     string `json:"address" validate:"required"`
	Description string `json:"description"`
}

func CreateHotel(c *fiber.Ctx) error {
	var input HotelInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	hotel := models.Hotel{Name: input.Name, Address: input.Address, Description: input.Description}
	if err := database.GetDB(c).Create(&hotel).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "could not create hotel")
	}
	return respondCreated(c, hotel)
}

func GetHotels(c *fiber.Ctx) error {
	var hotels []models.Hotel
	if err := database.GetDB(c).Find(&hotels).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list hotels")
	}
	return respondData(c, hotels)
}

func GetHotel(c *fiber.Ctx) error {
	var hotel models.Hotel
	if err := database.GetDB(c).First(&hotel, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "hotel not found")
	}
	return respondData(c, hotel)
}

type HotelUpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

func UpdateHotel(c *fiber.Ctx) error {
	var input HotelUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := database.GetDB(c)
	var hotel models.Hotel
	if err := db.First(&hotel, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "hotel not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) > 0 {
		if err := db.Model(&hotel).Updates(updates).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "could not update hotel")
		}
	}
	return respondData(c, hotel)
}

func DeleteHotel(c *fiber.Ctx) error {
	res := database.GetDB(c).Delete(&models.Hotel{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return respondError(c, fiber.StatusBadRequest, "could not delete hotel")
	}
	if res.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, "hotel not found")
	}
	return respondMessage(c, "hotel deleted")
}
