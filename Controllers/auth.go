package Controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Workly/Models"
	"Workly/middleware"
)

// AuthController handles phone-based login and session management
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"required,len=12,number,startswith=998"`
	Password string `json:"password"`
}

type bindChatRequest struct {
	Phone  string `json:"phone" validate:"required,len=12,number,startswith=998"`
	ChatID int64  `json:"chat_id" validate:"required"`
}

// Login authenticates a worker by phone number. Admins with a dashboard
// password set must also present it.
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input loginRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	worker, err := Models.GetWorkerByPhone(c.DB, input.Phone)
	if errors.Is(err, Models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "This phone number is not registered",
		})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}

	if len(worker.Password) > 0 {
		if err := bcrypt.CompareHashAndPassword(worker.Password, []byte(input.Password)); err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
		}
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatUint(uint64(worker.ID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create session"})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})

	return ctx.JSON(worker)
}

// BindChat attaches a messaging chat id to a worker after a successful phone
// login from the bot side.
func (c *AuthController) BindChat(ctx *fiber.Ctx) error {
	var input bindChatRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := Models.BindChatID(c.DB, input.Phone, input.ChatID); err != nil {
		if errors.Is(err, Models.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "This phone number is not registered",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Binding failed"})
	}

	worker, err := Models.GetWorkerByPhone(c.DB, input.Phone)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Binding failed"})
	}
	return ctx.JSON(worker)
}

// Me returns the session worker.
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	worker := ctx.Locals("worker").(Models.Worker)
	return ctx.JSON(worker)
}

// Logout clears the session cookie.
func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ctx.JSON(fiber.Map{"message": "Logged out"})
}

type setPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// SetPassword stores a bcrypt hash for the session admin's dashboard login.
func (c *AuthController) SetPassword(ctx *fiber.Ctx) error {
	worker := ctx.Locals("worker").(Models.Worker)

	var input setPasswordRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	if err := c.DB.Model(&Models.Worker{}).Where("id = ?", worker.ID).
		Update("password", hash).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save password"})
	}
	return ctx.JSON(fiber.Map{"message": "Password updated"})
}
