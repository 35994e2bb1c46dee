package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/LeinadCybre1024/LandRegistry/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v4"
)

// Store is the cookie session store. Sessions carry the same identity the
// JWT does and expire after 24 hours.
var Store = session.New(session.Config{
	Expiration:     24 * time.Hour,
	CookieHTTPOnly: true,
	CookieSameSite: "Lax",
})

// GenerateJWT generates a signed token identifying the user
func GenerateJWT(userID uint, walletAddress, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId":        userID,
		"walletAddress": walletAddress,
		"role":          role,
		"iat":           time.Now().Unix(),
		"exp":           time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// SetSession binds the user identity to the client's session cookie.
func SetSession(c *fiber.Ctx, userID uint, walletAddress, role string) error {
	sess, err := Store.Get(c)
	if err != nil {
		return err
	}
	sess.Set("userId", userID)
	sess.Set("walletAddress", walletAddress)
	sess.Set("role", role)
	return sess.Save()
}

// ClearSession destroys the session bound to the request, if any.
func ClearSession(c *fiber.Ctx) error {
	sess, err := Store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// Protected authenticates the request from either a Bearer token or the
// session cookie and stores userId, walletAddress and role in locals.
func Protected(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(config.AppConfig.JWTKey), nil
		})
		if err != nil || !token.Valid {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["userId"] == nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token payload")
		}

		userID, _ := claims["userId"].(float64) // JWT numbers decode as float64
		wallet, _ := claims["walletAddress"].(string)
		role, _ := claims["role"].(string)

		c.Locals("userId", uint(userID))
		c.Locals("walletAddress", wallet)
		c.Locals("role", role)
		return c.Next()
	}

	// Fall back to the session cookie
	sess, err := Store.Get(c)
	if err == nil {
		if userID, ok := sess.Get("userId").(uint); ok {
			wallet, _ := sess.Get("walletAddress").(string)
			role, _ := sess.Get("role").(string)

			c.Locals("userId", userID)
			c.Locals("walletAddress", wallet)
			c.Locals("role", role)
			return c.Next()
		}
	}

	return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
}

// JsonResponse writes the success envelope shared by every JSON endpoint.
func JsonResponse(c *fiber.Ctx, statusCode int, payload fiber.Map) error {
	if payload == nil {
		payload = fiber.Map{}
	}
	payload["status"] = "success"
	return c.Status(statusCode).JSON(payload)
}

// ErrorResponse writes the error envelope with a message.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// ValidationErrorResponse reports per-field validation failures.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "Validation failed!",
		"errors":  errors,
	})
}
