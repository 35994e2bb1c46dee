package adminRoutes

import (
	adminControllers "github.com/LeinadCybre1024/LandRegistry/controllers/admin"
	"github.com/LeinadCybre1024/LandRegistry/middleware"
	"github.com/LeinadCybre1024/LandRegistry/models"
	adminValidators "github.com/LeinadCybre1024/LandRegistry/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.Protected, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/users", adminControllers.UserList)
	adminGroup.Post("/users", adminValidators.CreateUser(), adminControllers.CreateUser)
	adminGroup.Post("/users/:id/approve", adminControllers.ApproveUser)
	adminGroup.Get("/properties", adminControllers.PropertyList)
	adminGroup.Post("/properties/:id/verify/:wallet", adminValidators.VerifyProperty(), adminControllers.VerifyProperty)
	adminGroup.Get("/dashboard", adminControllers.Dashboard)
}
