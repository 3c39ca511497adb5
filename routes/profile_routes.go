package routes

import (
	"github.com/anjiri1684/tutoring_api/handlers"
	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(api fiber.Router, h *handlers.Handler, protected fiber.Handler) {
	api.Get("/users", protected, middleware.AdminRequired(), h.GetAllUsers)
	api.Get("/tutors", protected, h.GetTutors)
	api.Get("/students", protected, middleware.RoleRequired(models.RoleTutor, models.RoleAdmin), h.GetStudents)

	profiles := api.Group("/profiles", protected)
	profiles.Get("/:id", h.GetProfile)
	profiles.Put("/:id", h.UpdateProfile)

	// Guards are per route: a "/student" group prefix would also catch "/students".
	student := api.Group("/student")
	onlyStudents := middleware.RoleRequired(models.RoleStudent)
	student.Get("/profile", protected, onlyStudents, h.GetMyProfile)
	student.Put("/profile", protected, onlyStudents, h.UpdateMyProfile)
	student.Post("/avatar", protected, onlyStudents, h.UploadAvatar)
}
