package controllers

import (
	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.GetDB(c).Preload("Role").Find(&users).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list users")
	}
	return respondData(c, users)
}

func GetUser(c *fiber.Ctx) error {
	var user models.User
	if err := database.GetDB(c).Preload("Role").First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "user not found")
	}
	return respondData(c, user)
}

type UserUpdateInput struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	RoleId   *string `json:"roleId"`
}

func UpdateUser(c *fiber.Ctx) error {
	var input UserUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := database.GetDB(c)

	var user models.User
	if err := db.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "user not found")
	}

	if input.RoleId != nil {
		var role models.Role
		if err := db.First(&role, "id = ?", *input.RoleId).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "unknown role")
		}
	}

	updates := utils.UpdatesFromPtrDTO(&input, map[string]string{"roleId": "role_id"})
	delete(updates, "password") // hashed below, never written raw
	if input.Password != nil {
		user.SetPassword(*input.Password)
		updates["password"] = user.Password
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, "could not update user")
		}
	}

	db.Preload("Role").First(&user, "id = ?", user.Id)
	return respondData(c, user)
}

func DeleteUser(c *fiber.Ctx) error {
	res := database.GetDB(c).Delete(&models.User{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return respondError(c, fiber.StatusBadRequest, "could not delete user")
	}
	if res.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, "user not found")
	}
	return respondMessage(c, "user deleted")
}
