package routes

import (
	"github.com/anjiri1684/tutoring_api/handlers"
	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/gofiber/fiber/v2"
)

func ScheduleRoutes(api fiber.Router, h *handlers.Handler, protected fiber.Handler) {
	api.Get("/tutors/:tutorId/slots", protected, h.GetTutorSlots)
	api.Post("/registration-requests", protected, middleware.RoleRequired(models.RoleStudent), h.CreateRegistrationRequest)

	onlyTutors := middleware.TutorRequired()
	deciders := middleware.RoleRequired(models.RoleTutor, models.RoleAdmin)

	slots := api.Group("/tutor/slots")
	slots.Get("", protected, onlyTutors, h.GetMySlots)
	slots.Put("", protected, onlyTutors, h.ReplaceMySlots)
	slots.Post("", protected, onlyTutors, h.AddMySlot)
	slots.Delete("/:slotId", protected, onlyTutors, h.RemoveMySlot)

	requests := api.Group("/tutor/registration-requests")
	requests.Get("", protected, onlyTutors, h.GetMyRegistrationRequests)
	requests.Post("/:id/approve", protected, deciders, h.ApproveRegistrationRequest)
	requests.Post("/:id/reject", protected, deciders, h.RejectRegistrationRequest)
}
