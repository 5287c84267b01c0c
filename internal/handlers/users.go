package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/trmops/internal/directory"
	"github.com/example/trmops/internal/models"
	"github.com/example/trmops/internal/utils"
)

// UserHandler manages directory entries for administrators.
type UserHandler struct {
	directory directory.Directory
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(dir directory.Directory) *UserHandler {
	return &UserHandler{directory: dir}
}

// ListUsers returns one page of directory entries.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	users, total, err := h.directory.List(c.UserContext(), pg)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": users, "pagination": fiber.Map{
		"current_page":   pg.Page,
		"items_per_page": pg.Limit,
		"total_items":    total,
	}})
}

type upsertUserRequest struct {
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	Active      *bool  `json:"active"`
}

// UpsertUser creates or updates the entry for a phone number. Entries are
// active unless the request says otherwise.
func (h *UserHandler) UpsertUser(c *fiber.Ctx) error {
	var req upsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user, err := h.directory.Upsert(c.UserContext(), models.User{
		Phone:       req.Phone,
		Role:        req.Role,
		DisplayName: req.DisplayName,
		Active:      active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}
