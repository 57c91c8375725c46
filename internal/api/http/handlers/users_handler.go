package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-service/internal/api/dto"
	"github.com/spec-kit/request-service/internal/domain"
	"github.com/spec-kit/request-service/internal/service"
	apperrors "github.com/spec-kit/request-service/pkg/util"
)

// UsersHandler manages directory endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Register POST /api/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.Register(c.UserContext(), service.UserRegisterInput{
		Identification: req.Identification,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Role:           domain.Role(req.Role),
		Password:       req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromUser(user)})
}

// Get GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUser(user)})
}

// List GET /api/users, optionally filtered by role.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var (
		users []domain.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.service.ListByRole(c.UserContext(), domain.Role(role))
	} else {
		users, err = h.service.List(c.UserContext())
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummaries(users)})
}

// ActiveHandlers GET /api/users/handlers/active returns accounts eligible
// to receive assignments.
func (h *UsersHandler) ActiveHandlers(c *fiber.Ctx) error {
	users, err := h.service.ListActiveHandlers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummaries(users)})
}

// Activate PUT /api/users/:id/activate.
func (h *UsersHandler) Activate(c *fiber.Ctx) error {
	user, err := h.service.Activate(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUser(user)})
}

// Deactivate PUT /api/users/:id/deactivate.
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	user, err := h.service.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromUser(user)})
}

func userSummaries(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.FromUser(&users[i]))
	}
	return items
}
