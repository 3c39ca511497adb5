package handlers

import (
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/gofiber/fiber/v2"
)

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=student tutor"`
	Phone    string      `json:"phone"`
	Faculty  string      `json:"faculty"`
	Major    string      `json:"major"`
	MSSV     string      `json:"mssv"`
	Subjects []string    `json:"subjects"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

func (h *Handler) Signin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	profile, err := h.svc.Auth.Signin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return h.respondWithToken(c, fiber.StatusOK, profile)
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	profile, err := h.svc.Auth.Signup(c.UserContext(), models.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Faculty:  req.Faculty,
		Major:    req.Major,
		MSSV:     req.MSSV,
		Subjects: req.Subjects,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return h.respondWithToken(c, fiber.StatusCreated, profile)
}

func (h *Handler) respondWithToken(c *fiber.Ctx, status int, profile models.Profile) error {
	token, err := h.svc.Auth.IssueToken(profile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create token"})
	}
	return c.Status(status).JSON(AuthResponse{Token: token, User: profile})
}
