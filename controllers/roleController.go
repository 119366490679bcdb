package controllers

import (
	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type RoleInput struct {
	RoleName    string `json:"roleName" validate:"required,min=2,max=32"`
	Description string `json:"description"`
}

func CreateRole(c *fiber.Ctx) error {
	var input RoleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	role := models.Role{RoleName: input.RoleName, Description: input.Description}
	if err := database.GetDB(c).Create(&role).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "could not create role")
	}
	return respondCreated(c, role)
}

func GetRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := database.GetDB(c).Find(&roles).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list roles")
	}
	return respondData(c, roles)
}

func GetRole(c *fiber.Ctx) error {
	var role models.Role
	if err := database.GetDB(c).First(&role, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "role not found")
	}
	return respondData(c, role)
}

type RoleUpdateInput struct {
	RoleName    *string `json:"roleName" validate:"omitempty,min=2,max=32"`
	Description *string `json:"description"`
}

func UpdateRole(c *fiber.Ctx) error {
	var input RoleUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := database.GetDB(c)
	var role models.Role
	if err := db.First(&role, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "role not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input, map[string]string{"roleName": "role_name"})
	if len(updates) > 0 {
		if err := db.Model(&role).Updates(updates).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "could not update role")
		}
	}
	return respondData(c, role)
}

func DeleteRole(c *fiber.Ctx) error {
	res := database.GetDB(c).Delete(&models.Role{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return respondError(c, fiber.StatusBadRequest, "could not delete role")
	}
	if res.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, "role not found")
	}
	return respondMessage(c, "role deleted")
}
