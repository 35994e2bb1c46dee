package propertyValidator

import (
	"strings"

	"github.com/LeinadCybre1024/LandRegistry/middleware"

	"github.com/gofiber/fiber/v2"
)

// List validator middleware
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Query("owner")) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Owner wallet address is required")
		}
		return c.Next()
	}
}

// Submit validator middleware. The deed file itself is checked in the
// controller together with the optional survey plan.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		if strings.TrimSpace(c.FormValue("title")) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(c.FormValue("streetAddress")) == "" {
			errors["streetAddress"] = "Street address is required!"
		}
		if strings.TrimSpace(c.FormValue("plotNumber")) == "" {
			errors["plotNumber"] = "Plot number is required!"
		}
		if strings.TrimSpace(c.FormValue("owner")) == "" {
			errors["owner"] = "Owner wallet address is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Search validator middleware
func Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Query("plotNumber")) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Plot number is required")
		}
		return c.Next()
	}
}

// Transfer validator middleware
func Transfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CurrentOwner string `json:"currentOwner"`
			NewOwner     string `json:"newOwner"`
			TxHash       string `json:"txHash"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.CurrentOwner) == "" {
			errors["currentOwner"] = "Current owner wallet address is required!"
		}
		if strings.TrimSpace(reqData.NewOwner) == "" {
			errors["newOwner"] = "New owner wallet address is required!"
		}
		if strings.TrimSpace(reqData.TxHash) == "" {
			errors["txHash"] = "Transaction hash is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Update validator middleware
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := make(map[string]interface{})
		if err := c.BodyParser(&body); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}
		if len(body) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nothing to update")
		}
		return c.Next()
	}
}
