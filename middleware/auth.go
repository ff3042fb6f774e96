package middleware

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"Workly/Models"
)

func SecretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	return []byte(secret)
}

func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Println(c.Method(), c.Path())
		return c.Next()
	}
}

// Verify resolves the session worker from the JWT cookie once at the boundary
// and stores it in Locals for the handlers. With adminOnly the worker must
// hold the admin flag.
func Verify(adminOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies("jwt")
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return SecretKey(), nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token claims",
			})
		}

		var worker Models.Worker
		result := Models.DB.Where("id = ? AND is_active = ?", claims.Issuer, true).
			Preload("Branch").Preload("Role").First(&worker)
		if result.Error != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Worker not found",
			})
		}

		c.Locals("worker", worker)

		if adminOnly && !worker.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "This section is for admins only",
			})
		}

		return c.Next()
	}
}
