package routes

import (
	"github.com/anjiri1684/tutoring_api/handlers"
	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(api fiber.Router, h *handlers.Handler, protected fiber.Handler) {
	sessions := api.Group("/sessions", protected)
	sessions.Get("", middleware.AdminRequired(), h.GetAllSessions)
	sessions.Get("/me", h.GetMySessions)
	sessions.Post("", h.CreateSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Patch("/:id", h.UpdateSession)
	sessions.Post("/:id/cancel", h.CancelSession)
	sessions.Post("/:id/rating", h.RateSession)

	writers := middleware.RoleRequired(models.RoleTutor, models.RoleAdmin)
	report := sessions.Group("/:id/report")
	report.Get("", h.GetReport)
	report.Post("", writers, h.AddReport)
	report.Get("/pdf", h.ExportReportPDF)
	report.Post("/archive", writers, h.ArchiveReport)
}
