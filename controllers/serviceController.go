package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type ServiceInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Active      bool    `json:"active"`
}

// CreateServices accepts a batch so the back office can provision the
// whole add-on catalogue in one call.
func CreateServices(c *fiber.Ctx) error {
	var inputs []ServiceInput
	if err := c.BodyParser(&inputs); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	db := database.GetDB(c)
	var created []models.Service

	for i, input := range inputs {
		if err := middlewares.ValidateStruct(input); err != nil {
			return respondError(c, fiber.StatusBadRequest, fmt.Sprintf("invalid service at index %d", i))
		}

		service := models.Service{
			Name:        strings.TrimSpace(input.Name),
			Description: strings.TrimSpace(input.Description),
			Price:       utils.Round2(input.Price),
			Active:      input.Active,
		}
		if err := db.Create(&service).Error; err != nil {
			return respondError(c, fiber.StatusInternalServerError, fmt.Sprintf("could not create service at index %d", i))
		}
		created = append(created, service)
	}

	return respondCreated(c, created)
}

func GetServices(c *fiber.Ctx) error {
	var services []models.Service
	q := database.GetDB(c)
	if c.Query("all") == "" {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&services).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list services")
	}
	return respondData(c, services)
}

func GetService(c *fiber.Ctx) error {
	var service models.Service
	if err := database.GetDB(c).First(&service, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "service not found")
	}
	return respondData(c, service)
}

type ServiceUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
}

func UpdateService(c *fiber.Ctx) error {
	var input ServiceUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := database.GetDB(c)
	var service models.Service
	if err := db.First(&service, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "service not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) > 0 {
		if err := db.Model(&service).Updates(updates).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "could not update service")
		}
	}
	return respondData(c, service)
}

func DeleteService(c *fiber.Ctx) error {
	if c.Params("id") == database.RoomServiceID() {
		return respondError(c, fiber.StatusBadRequest, "the room-booking service cannot be deleted")
	}
	res := database.GetDB(c).Delete(&models.Service{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return respondError(c, fiber.StatusBadRequest, "could not delete service")
	}
	if res.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, "service not found")
	}
	return respondMessage(c, "service deleted")
}
