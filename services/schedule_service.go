package services

import (
	"context"
	"time"

	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/utils"
	"go.uber.org/zap"
)

// Fixed values for sessions created from an approved request.
const (
	ApprovedSessionDuration = 120
	ApprovedSessionLocation = "TBA"
)

type ScheduleService struct {
	store  *database.Store
	sim    *Simulator
	logger *zap.Logger
}

func NewScheduleService(store *database.Store, sim *Simulator, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{store: store, sim: sim, logger: orNop(logger)}
}

func (s *ScheduleService) GetAvailableSlots(ctx context.Context, tutorID string) ([]models.AvailableSlot, error) {
	return call(ctx, s.sim, "getAvailableSlots", func() ([]models.AvailableSlot, error) {
		var out []models.AvailableSlot
		err := s.store.View(func(tx *database.Tx) error {
			out = tx.Slots(func(sl models.AvailableSlot) bool { return sl.TutorID == tutorID })
			return nil
		})
		return out, err
	})
}

func newSlot(tutorID string, in models.SlotInput, available bool) models.AvailableSlot {
	return models.AvailableSlot{
		ID:          utils.NewSlotID(),
		TutorID:     tutorID,
		DayOfWeek:   in.DayOfWeek,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsAvailable: available,
		Location:    in.Location,
	}
}

// UpdateAvailableSlots replaces every slot the tutor owns with slots.
func (s *ScheduleService) UpdateAvailableSlots(ctx context.Context, tutorID string, slots []models.SlotInput) ([]models.AvailableSlot, error) {
	return call(ctx, s.sim, "updateAvailableSlots", func() ([]models.AvailableSlot, error) {
		out := make([]models.AvailableSlot, 0, len(slots))
		err := s.store.Update(func(tx *database.Tx) error {
			if _, err := tx.DeleteSlots(func(sl models.AvailableSlot) bool { return sl.TutorID == tutorID }); err != nil {
				return err
			}
			for _, in := range slots {
				available := true
				if in.IsAvailable != nil {
					available = *in.IsAvailable
				}
				sl := newSlot(tutorID, in, available)
				if err := tx.InsertSlot(sl); err != nil {
					return err
				}
				out = append(out, sl)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info("availability replaced", zap.String("tutor_id", tutorID), zap.Int("slots", len(out)))
		return out, nil
	})
}

func (s *ScheduleService) AddAvailableSlot(ctx context.Context, tutorID string, in models.SlotInput) (models.AvailableSlot, error) {
	return call(ctx, s.sim, "addAvailableSlot", func() (models.AvailableSlot, error) {
		sl := newSlot(tutorID, in, true)
		err := s.store.Update(func(tx *database.Tx) error {
			return tx.InsertSlot(sl)
		})
		return sl, err
	})
}

func (s *ScheduleService) RemoveAvailableSlot(ctx context.Context, id string) (bool, error) {
	return call(ctx, s.sim, "removeAvailableSlot", func() (bool, error) {
		err := s.store.Update(func(tx *database.Tx) error {
			n, err := tx.DeleteSlots(func(sl models.AvailableSlot) bool { return sl.ID == id })
			if err != nil {
				return err
			}
			if n == 0 {
				return ErrSlotNotFound
			}
			return nil
		})
		return err == nil, err
	})
}

func (s *ScheduleService) GetRegistrationRequests(ctx context.Context, tutorID string) ([]models.RegistrationRequest, error) {
	return call(ctx, s.sim, "getRegistrationRequests", func() ([]models.RegistrationRequest, error) {
		var out []models.RegistrationRequest
		err := s.store.View(func(tx *database.Tx) error {
			out = tx.Requests(func(r models.RegistrationRequest) bool { return r.TutorID == tutorID })
			return nil
		})
		return out, err
	})
}

type Approval struct {
	Request models.RegistrationRequest `json:"request"`
	Session models.Session             `json:"session"`
}

// ApproveRequest approves a pending request and books the session it asks
// for. Both changes commit together or not at all.
func (s *ScheduleService) ApproveRequest(ctx context.Context, id string) (Approval, error) {
	return call(ctx, s.sim, "approveRequest", func() (Approval, error) {
		var out Approval
		err := s.store.Update(func(tx *database.Tx) error {
			req, ok := tx.FindRequest(id)
			if !ok {
				return ErrRequestNotFound
			}
			if !req.IsPending() {
				return ErrRequestProcessed
			}
			req, _, err := tx.UpdateRequest(id, func(r *models.RegistrationRequest) { r.Status = models.RequestApproved })
			if err != nil {
				return err
			}
			sess := models.Session{
				ID:        tx.NextID(database.KindSession),
				TutorID:   req.TutorID,
				StudentID: req.StudentID,
				Subject:   req.Subject,
				Date:      req.PreferredDate,
				Time:      req.StartTime(),
				Duration:  ApprovedSessionDuration,
				Location:  ApprovedSessionLocation,
				Type:      models.SessionInPerson,
				Status:    models.SessionScheduled,
				Notes:     req.Notes,
				CreatedAt: tx.Now(),
			}
			if err := tx.InsertSession(sess); err != nil {
				return err
			}
			out = Approval{Request: req, Session: sess}
			return nil
		})
		if err != nil {
			return Approval{}, err
		}
		s.logger.Info("registration request approved",
			zap.String("request_id", id), zap.String("session_id", out.Session.ID))
		return out, nil
	})
}

// RejectRequest closes a pending request. reason may be nil.
func (s *ScheduleService) RejectRequest(ctx context.Context, id string, reason *string) (models.RegistrationRequest, error) {
	return call(ctx, s.sim, "rejectRequest", func() (models.RegistrationRequest, error) {
		var out models.RegistrationRequest
		err := s.store.Update(func(tx *database.Tx) error {
			req, ok := tx.FindRequest(id)
			if !ok {
				return ErrRequestNotFound
			}
			if !req.IsPending() {
				return ErrRequestProcessed
			}
			updated, _, err := tx.UpdateRequest(id, func(r *models.RegistrationRequest) {
				r.Status = models.RequestRejected
				if reason != nil {
					v := *reason
					r.RejectionReason = &v
				}
			})
			out = updated
			return err
		})
		return out, err
	})
}

func (s *ScheduleService) CreateRegistrationRequest(ctx context.Context, in models.RequestInput) (models.RegistrationRequest, error) {
	return call(ctx, s.sim, "createRegistrationRequest", func() (models.RegistrationRequest, error) {
		var req models.RegistrationRequest
		err := s.store.Update(func(tx *database.Tx) error {
			req = models.RegistrationRequest{
				ID:            tx.NextID(database.KindRequest),
				StudentID:     in.StudentID,
				TutorID:       in.TutorID,
				StudentName:   in.StudentName,
				Subject:       in.Subject,
				PreferredDate: in.PreferredDate,
				PreferredTime: in.PreferredTime,
				Status:        models.RequestPending,
				RequestDate:   tx.Now().Format(time.DateOnly),
				Notes:         in.Notes,
			}
			return tx.InsertRequest(req)
		})
		return req, err
	})
}
