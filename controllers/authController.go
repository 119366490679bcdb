package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=admin user"`
}

func Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	if input.Password != input.PasswordConfirm {
		return respondError(c, fiber.StatusBadRequest, "passwords do not match")
	}

	var count int64
	database.DB.Model(&models.User{}).
		Where("email = ? OR username = ?", input.Email, input.Username).
		Count(&count)
	if count > 0 {
		return respondError(c, fiber.StatusBadRequest, "username or email already exists")
	}

	roleName := input.Role
	if roleName == "" {
		roleName = models.RoleUser
	}
	var role models.Role
	if err := database.DB.Where("role_name = ?", roleName).First(&role).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "role not provisioned")
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		RoleId:   role.Id,
		Role:     role,
	}
	user.SetPassword(input.Password)
	if err := database.DB.Omit("Role").Create(&user).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "could not create user")
	}

	return respondCreated(c, user)
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var user models.User
	err := database.DB.Preload("Role").
		Where("username = ? OR email = ?", input.Username, input.Username).
		First(&user).Error
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid credentials")
	}

	if err := user.ComparePassword(input.Password); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid credentials")
	}

	// Resolve the role once, here; everything downstream sees a plain name.
	roleName := strings.ToLower(strings.TrimSpace(user.Role.RoleName))
	if roleName == "" {
		roleName = models.RoleUser
	}

	token, err := middlewares.GenerateJWT(user.Id, roleName)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not sign token")
	}

	return respondData(c, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.Id,
			"username": user.Username,
			"email":    user.Email,
			"role":     roleName,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	// Tokens are stateless; clearing the legacy cookie is all there is to do.
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return respondMessage(c, "success")
}

// GetProfile returns the authenticated user with its role preloaded.
func GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := database.GetDB(c).Preload("Role").First(&user, "id = ?", userID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "user not found")
	}
	return respondData(c, user)
}
