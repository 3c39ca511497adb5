package handlers

import (
	"slices"

	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/gofiber/fiber/v2"
)

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Link    string `json:"link"`
}

func (h *Handler) GetMyNotifications(c *fiber.Ctx) error {
	list, err := h.svc.Notifications.GetUserNotifications(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) CreateNotification(c *fiber.Ctx) error {
	var req CreateNotificationRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	n, err := h.svc.Notifications.CreateNotification(c.UserContext(), models.NotificationInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Link:    req.Link,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	id := c.Params("id")
	mine, err := h.svc.Notifications.GetUserNotifications(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	owned := slices.ContainsFunc(mine, func(n models.Notification) bool { return n.ID == id })
	if !owned && middleware.Role(c) != models.RoleAdmin {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	n, err := h.svc.Notifications.MarkAsRead(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(n)
}
