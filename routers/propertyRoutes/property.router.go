package propertyRoutes

import (
	propertyControllers "github.com/LeinadCybre1024/LandRegistry/controllers/property"
	"github.com/LeinadCybre1024/LandRegistry/middleware"
	propertyValidators "github.com/LeinadCybre1024/LandRegistry/validators/property"

	"github.com/gofiber/fiber/v2"
)

func SetupPropertyRoutes(app *fiber.App) {
	propertyGroup := app.Group("/properties", middleware.Protected)

	// /search before /:id so the literal segment wins
	propertyGroup.Get("/search", propertyValidators.Search(), propertyControllers.Search)
	propertyGroup.Get("/", propertyValidators.List(), propertyControllers.List)
	propertyGroup.Post("/", propertyValidators.Submit(), propertyControllers.Submit)
	propertyGroup.Get("/:id", propertyControllers.Get)
	propertyGroup.Put("/:id", propertyValidators.Update(), propertyControllers.Update)
	propertyGroup.Delete("/:id", propertyControllers.Delete)
	propertyGroup.Post("/:id/transfer", propertyValidators.Transfer(), propertyControllers.Transfer)
	propertyGroup.Get("/:id/:docType", propertyControllers.GetDocument)
}
