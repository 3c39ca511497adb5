package routes

import (
	"github.com/anjiri1684/tutoring_api/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, h *handlers.Handler) {
	auth := api.Group("/auth")
	auth.Post("/signin", h.Signin)
	auth.Post("/signup", h.Signup)
}
