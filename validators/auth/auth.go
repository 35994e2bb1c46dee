package authValidator

import (
	"strings"

	"github.com/LeinadCybre1024/LandRegistry/middleware"

	"github.com/gofiber/fiber/v2"
)

// Register validator middleware. File checks (presence, type, size) stay
// in the controller where the multipart form is consumed.
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		if strings.TrimSpace(c.FormValue("firstName")) == "" {
			errors["firstName"] = "First name is required!"
		}
		if strings.TrimSpace(c.FormValue("lastName")) == "" {
			errors["lastName"] = "Last name is required!"
		}
		if strings.TrimSpace(c.FormValue("walletAddress")) == "" {
			errors["walletAddress"] = "Wallet address is required!"
		}
		if strings.TrimSpace(c.FormValue("idNumber")) == "" {
			errors["idNumber"] = "ID number is required!"
		}
		if len(strings.TrimSpace(c.FormValue("password"))) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WalletAddress string `json:"walletAddress"`
			Password      string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.WalletAddress) == "" {
			errors["walletAddress"] = "Wallet address is required!"
		}
		if strings.TrimSpace(reqData.Password) == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ChangePassword validator middleware
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CurrentWalletAddress string `json:"currentWalletAddress"`
			CurrentPassword      string `json:"currentPassword"`
			NewPassword          string `json:"newPassword"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if reqData.CurrentPassword == "" || reqData.NewPassword == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Both current and new password are required")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.CurrentWalletAddress) == "" {
			errors["currentWalletAddress"] = "Wallet address is required!"
		}
		if len(strings.TrimSpace(reqData.NewPassword)) < 8 {
			errors["newPassword"] = "New password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
