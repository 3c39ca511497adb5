package handlers

import (
	"slices"

	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/services"
	"github.com/gofiber/fiber/v2"
)

type SlotRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable *bool  `json:"is_available,omitempty"`
	Location    string `json:"location"`
}

func (r SlotRequest) input() models.SlotInput {
	return models.SlotInput{
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
		Location:    r.Location,
	}
}

type ReplaceSlotsRequest struct {
	Slots []SlotRequest `json:"slots" validate:"dive"`
}

type RejectRequestBody struct {
	Reason *string `json:"reason,omitempty"`
}

type RegistrationRequestBody struct {
	TutorID       string `json:"tutor_id" validate:"required"`
	Subject       string `json:"subject" validate:"required"`
	PreferredDate string `json:"preferred_date" validate:"required,datetime=2006-01-02"`
	PreferredTime string `json:"preferred_time" validate:"required"`
	Notes         string `json:"notes"`
}

func (h *Handler) GetTutorSlots(c *fiber.Ctx) error {
	slots, err := h.svc.Schedule.GetAvailableSlots(c.UserContext(), c.Params("tutorId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(slots)
}

func (h *Handler) GetMySlots(c *fiber.Ctx) error {
	slots, err := h.svc.Schedule.GetAvailableSlots(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(slots)
}

func (h *Handler) ReplaceMySlots(c *fiber.Ctx) error {
	var req ReplaceSlotsRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	inputs := make([]models.SlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		inputs = append(inputs, s.input())
	}
	slots, err := h.svc.Schedule.UpdateAvailableSlots(c.UserContext(), middleware.UserID(c), inputs)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(slots)
}

func (h *Handler) AddMySlot(c *fiber.Ctx) error {
	var req SlotRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	slot, err := h.svc.Schedule.AddAvailableSlot(c.UserContext(), middleware.UserID(c), req.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

func (h *Handler) RemoveMySlot(c *fiber.Ctx) error {
	slotID := c.Params("slotId")
	mine, err := h.svc.Schedule.GetAvailableSlots(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	if !slices.ContainsFunc(mine, func(s models.AvailableSlot) bool { return s.ID == slotID }) {
		return h.fail(c, services.ErrSlotNotFound)
	}
	if _, err := h.svc.Schedule.RemoveAvailableSlot(c.UserContext(), slotID); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetMyRegistrationRequests(c *fiber.Ctx) error {
	list, err := h.svc.Schedule.GetRegistrationRequests(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

// ownsRequest reports whether the calling tutor is the addressee of the
// request. Admins act on any request.
func (h *Handler) ownsRequest(c *fiber.Ctx, id string) (bool, error) {
	if middleware.Role(c) == models.RoleAdmin {
		return true, nil
	}
	mine, err := h.svc.Schedule.GetRegistrationRequests(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(mine, func(r models.RegistrationRequest) bool { return r.ID == id }), nil
}

func (h *Handler) ApproveRegistrationRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	owned, err := h.ownsRequest(c, id)
	if err != nil {
		return h.fail(c, err)
	}
	if !owned {
		return h.fail(c, services.ErrRequestNotFound)
	}
	approval, err := h.svc.Schedule.ApproveRequest(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(approval)
}

func (h *Handler) RejectRegistrationRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	var body RejectRequestBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, errCannotParse)
		}
	}
	owned, err := h.ownsRequest(c, id)
	if err != nil {
		return h.fail(c, err)
	}
	if !owned {
		return h.fail(c, services.ErrRequestNotFound)
	}
	req, err := h.svc.Schedule.RejectRequest(c.UserContext(), id, body.Reason)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(req)
}

func (h *Handler) CreateRegistrationRequest(c *fiber.Ctx) error {
	var body RegistrationRequestBody
	if err := parse(c, &body); err != nil {
		return badRequest(c, err)
	}
	student, err := h.svc.Profiles.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	req, err := h.svc.Schedule.CreateRegistrationRequest(c.UserContext(), models.RequestInput{
		StudentID:     student.ID,
		TutorID:       body.TutorID,
		StudentName:   student.Name,
		Subject:       body.Subject,
		PreferredDate: body.PreferredDate,
		PreferredTime: body.PreferredTime,
		Notes:         body.Notes,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}
