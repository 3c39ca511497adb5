package handlers

import (
	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/services"
	"github.com/gofiber/fiber/v2"
)

type CreateSessionRequest struct {
	TutorID   string             `json:"tutor_id" validate:"required"`
	StudentID string             `json:"student_id"`
	Subject   string             `json:"subject" validate:"required"`
	Date      string             `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string             `json:"time" validate:"required,datetime=15:04"`
	Duration  int                `json:"duration" validate:"required,min=15,max=480"`
	Location  string             `json:"location"`
	Type      models.SessionType `json:"type" validate:"required,oneof=in-person online"`
	Notes     string             `json:"notes"`
}

// UpdateSessionRequest is what participants may change. Participants,
// rating and feedback have their own flows.
type UpdateSessionRequest struct {
	Subject  *string               `json:"subject,omitempty" validate:"omitempty,min=1"`
	Date     *string               `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time     *string               `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Duration *int                  `json:"duration,omitempty" validate:"omitempty,min=15,max=480"`
	Location *string               `json:"location,omitempty"`
	Type     *models.SessionType   `json:"type,omitempty" validate:"omitempty,oneof=in-person online"`
	Status   *models.SessionStatus `json:"status,omitempty" validate:"omitempty,oneof=pending scheduled completed cancelled"`
	Notes    *string               `json:"notes,omitempty"`
}

func (r UpdateSessionRequest) patch() models.SessionPatch {
	return models.SessionPatch{
		Subject:  r.Subject,
		Date:     r.Date,
		Time:     r.Time,
		Duration: r.Duration,
		Location: r.Location,
		Type:     r.Type,
		Status:   r.Status,
		Notes:    r.Notes,
	}
}

type RateSessionRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

type ReportRequest struct {
	Summary  string            `json:"summary" validate:"required"`
	Topics   []string          `json:"topics"`
	Progress string            `json:"progress"`
	Homework string            `json:"homework"`
	Extra    map[string]string `json:"extra"`
}

func participates(c *fiber.Ctx, s models.Session) bool {
	if middleware.Role(c) == models.RoleAdmin {
		return true
	}
	id := middleware.UserID(c)
	return id == s.StudentID || id == s.TutorID
}

// session loads the session named by :id and checks the caller may see it.
// A nil session with a nil error means a response was already written.
func (h *Handler) session(c *fiber.Ctx) (*models.Session, error) {
	s, ok, err := h.svc.Sessions.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, h.fail(c, err)
	}
	if !ok {
		return nil, h.fail(c, services.ErrSessionNotFound)
	}
	if !participates(c, s) {
		return nil, forbidden(c)
	}
	return &s, nil
}

func (h *Handler) GetMySessions(c *fiber.Ctx) error {
	sessions, err := h.svc.Sessions.GetUserSessions(c.UserContext(), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessions)
}

func (h *Handler) GetAllSessions(c *fiber.Ctx) error {
	sessions, err := h.svc.Sessions.GetUserSessions(c.UserContext(), "", models.RoleAdmin)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessions)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	return c.JSON(s)
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	if middleware.Role(c) == models.RoleStudent {
		req.StudentID = middleware.UserID(c)
	}
	if req.StudentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id is required"})
	}
	s, err := h.svc.Sessions.CreateSession(c.UserContext(), models.SessionInput{
		TutorID:   req.TutorID,
		StudentID: req.StudentID,
		Subject:   req.Subject,
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		Location:  req.Location,
		Type:      req.Type,
		Notes:     req.Notes,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *Handler) UpdateSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	var req UpdateSessionRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	// Only a report completes a session, unless an admin steps in.
	if req.Status != nil && *req.Status == models.SessionCompleted && middleware.Role(c) != models.RoleAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Submit a report to complete a session"})
	}
	updated, err := h.svc.Sessions.UpdateSession(c.UserContext(), s.ID, req.patch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) CancelSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	cancelled, err := h.svc.Sessions.CancelSession(c.UserContext(), s.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cancelled)
}

func (h *Handler) RateSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	if middleware.UserID(c) != s.StudentID {
		return forbidden(c)
	}
	var req RateSessionRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	rated, err := h.svc.Sessions.RateSession(c.UserContext(), s.ID, req.Rating, req.Feedback)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rated)
}

// AddReport accepts a report even for an unknown session id; the report is
// stored and no session changes. A known session takes reports only from
// its tutor or an admin.
func (h *Handler) AddReport(c *fiber.Ctx) error {
	s, ok, err := h.svc.Sessions.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if ok && middleware.UserID(c) != s.TutorID && middleware.Role(c) != models.RoleAdmin {
		return forbidden(c)
	}
	var req ReportRequest
	if err := parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	report, err := h.svc.Sessions.AddReport(c.UserContext(), c.Params("id"), models.ReportInput{
		Summary:  req.Summary,
		Topics:   req.Topics,
		Progress: req.Progress,
		Homework: req.Homework,
		Extra:    req.Extra,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *Handler) GetReport(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	report, ok, err := h.svc.Sessions.GetReport(c.UserContext(), s.ID)
	if err != nil {
		return h.fail(c, err)
	}
	if !ok {
		return h.fail(c, services.ErrReportNotFound)
	}
	return c.JSON(report)
}

func (h *Handler) ExportReportPDF(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	pdf, err := h.svc.Reports.ExportPDF(c.UserContext(), s.ID)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="session_`+s.ID+`_report.pdf"`)
	return c.Send(pdf)
}

func (h *Handler) ArchiveReport(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	url, err := h.svc.Reports.Archive(c.UserContext(), s.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
