package adminValidator

import (
	"strings"

	"github.com/LeinadCybre1024/LandRegistry/middleware"
	"github.com/LeinadCybre1024/LandRegistry/models"

	"github.com/gofiber/fiber/v2"
)

// CreateUser validator middleware
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string `json:"name"`
			WalletAddress string `json:"walletAddress"`
			Password      string `json:"password"`
			UserRole      string `json:"userRole"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "name is required"
		}
		if strings.TrimSpace(reqData.WalletAddress) == "" {
			errors["walletAddress"] = "walletAddress is required"
		}
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}
		if !models.ValidRole(reqData.UserRole) {
			errors["userRole"] = "Invalid user role"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// VerifyProperty validator middleware. Membership of the action in
// {approve, reject} is decided in the controller after the property
// lookup so a missing property still reports NotFound first.
func VerifyProperty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Action string `json:"action"`
			Reason string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if strings.TrimSpace(reqData.Action) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Action is required")
		}

		return c.Next()
	}
}
