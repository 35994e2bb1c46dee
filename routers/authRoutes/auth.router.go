package authRoutes

import (
	authControllers "github.com/LeinadCybre1024/LandRegistry/controllers/auth"
	authValidators "github.com/LeinadCybre1024/LandRegistry/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Post("/register", authValidators.Register(), authControllers.Register)
	app.Post("/login", authValidators.Login(), authControllers.Login)
	app.Post("/logout", authControllers.Logout)
	app.Get("/check-session", authControllers.CheckSession)
	app.Post("/profile/change-password", authValidators.ChangePassword(), authControllers.ChangePassword)
}
