package routes

import (
	"github.com/anjiri1684/tutoring_api/handlers"
	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(api fiber.Router, h *handlers.Handler, protected fiber.Handler) {
	notifications := api.Group("/notifications", protected)
	notifications.Get("/me", h.GetMyNotifications)
	notifications.Post("", middleware.AdminRequired(), h.CreateNotification)
	notifications.Post("/:id/read", h.MarkNotificationRead)
}
