package controllers

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"zentroq-backend/models"
	"zentroq-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController verifies users against the whitelist and issues session
// tokens.
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type VerifyRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type VerifiedUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type VerifyResponse struct {
	Authorized bool          `json:"authorized"`
	User       *VerifiedUser `json:"user,omitempty"`
	Token      string        `json:"token,omitempty"`
	Message    string        `json:"message,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Verify handles POST /auth/verify. Membership is checked case-insensitively;
// a hit updates last_login and backfills the stored name if it was empty.
func (ac *AuthController) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(VerifyResponse{
			Authorized: false,
			Message:    "Invalid request body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRegex.MatchString(email) {
		return c.Status(fiber.StatusBadRequest).JSON(VerifyResponse{
			Authorized: false,
			Message:    "Invalid email format. Authentication failed.",
		})
	}

	var user models.AuthorizedUser
	err := ac.DB.Where("LOWER(email) = ? AND enabled = ?", email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(VerifyResponse{
				Authorized: false,
				Message:    "You are not authorized to access this application. Please contact your administrator.",
			})
		}
		return queryError(c, "Error verifying user", err)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"last_login": now}
	if req.Name != "" && user.Name == "" {
		updates["name"] = req.Name
	}
	if err := ac.DB.Model(&user).Updates(updates).Error; err != nil {
		return queryError(c, "Error updating user record", err)
	}

	name := user.Name
	if name == "" {
		name = req.Name
	}

	token, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		return queryError(c, "Error issuing session token", err)
	}

	return c.JSON(VerifyResponse{
		Authorized: true,
		Token:      token,
		User: &VerifiedUser{
			Email: user.Email,
			Name:  name,
			Role:  user.Role,
		},
	})
}
