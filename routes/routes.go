package routes

import (
	"github.com/anjiri1684/tutoring_api/handlers"
	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/gofiber/fiber/v2"
)

// Setup mounts every API group under /api/v1.
func Setup(app *fiber.App, h *handlers.Handler, jwtSecret []byte) {
	api := app.Group("/api/v1")
	protected := middleware.Protected(jwtSecret)

	AuthRoutes(api, h)
	SessionRoutes(api, h, protected)
	ProfileRoutes(api, h, protected)
	NotificationRoutes(api, h, protected)
	ScheduleRoutes(api, h, protected)
	WebsocketRoutes(api, h)
}
