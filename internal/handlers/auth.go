package handlers

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/trudransh/kpa-formsdb/internal/services"
	"github.com/trudransh/kpa-formsdb/internal/utils"
)

// AuthHandler handles authentication routes
type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Login handles POST /v1/auth/login
// @Summary Authenticate with phone number and password
// @Description Verifies credentials and returns a short-lived bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, []string{"phone_number", "password"})
	}

	fields := requiredFields(map[string]string{
		"phone_number": body.PhoneNumber,
		"password":     body.Password,
	})
	if len(fields) > 0 {
		return utils.ValidationErrorResponse(c, fields)
	}

	token, err := h.Auth.Login(body.PhoneNumber, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return utils.ErrorResponse(c, "Incorrect phone number or password", fiber.StatusUnauthorized, "auth.login")
		}
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "auth.login")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Register handles POST /v1/auth/register
// @Summary Register a new user
// @Description Creates an active user; duplicate phone numbers are rejected
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, []string{"phone_number", "password"})
	}

	fields := requiredFields(map[string]string{
		"phone_number": body.PhoneNumber,
		"password":     body.Password,
	})
	if len(fields) > 0 {
		return utils.ValidationErrorResponse(c, fields)
	}

	user, err := h.Auth.Register(body.PhoneNumber, body.Password)
	if err != nil {
		if _, ok := services.IsConflict(err); ok {
			return utils.ErrorResponse(c, "Phone number already registered", fiber.StatusBadRequest, "auth.register")
		}
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "auth.register")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// requiredFields returns the names of fields whose values are empty, sorted
// by name for stable responses.
func requiredFields(values map[string]string) []string {
	var missing []string
	for name, value := range values {
		if value == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
