package handlers

import (
	"strings"

	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/gofiber/fiber/v2"
)

const maxAvatarSize = 5 << 20

// UpdateProfileRequest limits what a user may change about themselves.
// Rating and session totals are not user-editable.
type UpdateProfileRequest struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string   `json:"phone,omitempty"`
	Bio      *string   `json:"bio,omitempty"`
	Faculty  *string   `json:"faculty,omitempty"`
	Major    *string   `json:"major,omitempty"`
	MSSV     *string   `json:"mssv,omitempty"`
	GPA      *float64  `json:"gpa,omitempty" validate:"omitempty,min=0,max=10"`
	Subjects *[]string `json:"subjects,omitempty"`
}

func (r UpdateProfileRequest) patch() models.ProfilePatch {
	return models.ProfilePatch{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Bio:      r.Bio,
		Faculty:  r.Faculty,
		Major:    r.Major,
		MSSV:     r.MSSV,
		GPA:      r.GPA,
		Subjects: r.Subjects,
	}
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	p, err := h.svc.Profiles.GetProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != middleware.UserID(c) && middleware.Role(c) != models.RoleAdmin {
		return forbidden(c)
	}
	return h.updateProfile(c, id)
}

func (h *Handler) GetMyProfile(c *fiber.Ctx) error {
	p, err := h.svc.Profiles.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) UpdateMyProfile(c *fiber.Ctx) error {
	return h.updateProfile(c, middleware.UserID(c))
}

func (h *Handler) updateProfile(c *fiber.Ctx, id string) error {
	var req UpdateProfileRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	p, err := h.svc.Profiles.UpdateProfile(c.UserContext(), id, req.patch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.svc.Profiles.GetAllUsers(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) GetTutors(c *fiber.Ctx) error {
	tutors, err := h.svc.Profiles.GetTutors(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tutors)
}

func (h *Handler) GetStudents(c *fiber.Ctx) error {
	students, err := h.svc.Profiles.GetStudents(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(students)
}

func (h *Handler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if file.Size > maxAvatarSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "avatar must be at most 5MB"})
	}
	if !strings.HasPrefix(file.Header.Get(fiber.HeaderContentType), "image/") {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": "avatar must be an image"})
	}
	f, err := file.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer f.Close()

	url, err := h.svc.Avatars.Upload(c.UserContext(), middleware.UserID(c), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}
