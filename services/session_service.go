package services

import (
	"context"

	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/models"
	"go.uber.org/zap"
)

type found[T any] struct {
	value T
	ok    bool
}

type SessionService struct {
	store  *database.Store
	sim    *Simulator
	logger *zap.Logger
}

func NewSessionService(store *database.Store, sim *Simulator, logger *zap.Logger) *SessionService {
	return &SessionService{store: store, sim: sim, logger: orNop(logger)}
}

// GetUserSessions lists a student's or tutor's sessions in insertion order.
// Any other role sees every session.
func (s *SessionService) GetUserSessions(ctx context.Context, userID string, role models.Role) ([]models.Session, error) {
	return call(ctx, s.sim, "getUserSessions", func() ([]models.Session, error) {
		var keep func(models.Session) bool
		switch role {
		case models.RoleStudent:
			keep = func(sess models.Session) bool { return sess.StudentID == userID }
		case models.RoleTutor:
			keep = func(sess models.Session) bool { return sess.TutorID == userID }
		}
		var out []models.Session
		err := s.store.View(func(tx *database.Tx) error {
			out = tx.Sessions(keep)
			return nil
		})
		return out, err
	})
}

// GetSession reports ok=false for an unknown id; that is not an error.
func (s *SessionService) GetSession(ctx context.Context, id string) (models.Session, bool, error) {
	r, err := call(ctx, s.sim, "getSession", func() (found[models.Session], error) {
		var r found[models.Session]
		err := s.store.View(func(tx *database.Tx) error {
			r.value, r.ok = tx.FindSession(id)
			return nil
		})
		return r, err
	})
	return r.value, r.ok, err
}

func (s *SessionService) CreateSession(ctx context.Context, in models.SessionInput) (models.Session, error) {
	return call(ctx, s.sim, "createSession", func() (models.Session, error) {
		var created models.Session
		err := s.store.Update(func(tx *database.Tx) error {
			created = models.Session{
				ID:        tx.NextID(database.KindSession),
				TutorID:   in.TutorID,
				StudentID: in.StudentID,
				Subject:   in.Subject,
				Date:      in.Date,
				Time:      in.Time,
				Duration:  in.Duration,
				Location:  in.Location,
				Type:      in.Type,
				Status:    models.SessionPending,
				Notes:     in.Notes,
				CreatedAt: tx.Now(),
			}
			return tx.InsertSession(created)
		})
		if err != nil {
			return models.Session{}, err
		}
		s.logger.Info("session created", zap.String("session_id", created.ID), zap.String("tutor_id", created.TutorID))
		return created, nil
	})
}

func (s *SessionService) UpdateSession(ctx context.Context, id string, patch models.SessionPatch) (models.Session, error) {
	return call(ctx, s.sim, "updateSession", func() (models.Session, error) {
		return s.mutate(id, patch.Apply)
	})
}

func (s *SessionService) CancelSession(ctx context.Context, id string) (models.Session, error) {
	return call(ctx, s.sim, "cancelSession", func() (models.Session, error) {
		sess, err := s.mutate(id, func(sess *models.Session) { sess.Status = models.SessionCancelled })
		if err == nil {
			s.logger.Info("session cancelled", zap.String("session_id", id))
		}
		return sess, err
	})
}

// RateSession records the student's rating and optional comment.
func (s *SessionService) RateSession(ctx context.Context, id string, rating int, feedback string) (models.Session, error) {
	patch := models.SessionPatch{Rating: &rating}
	if feedback != "" {
		patch.Feedback = &feedback
	}
	return call(ctx, s.sim, "rateSession", func() (models.Session, error) {
		return s.mutate(id, patch.Apply)
	})
}

func (s *SessionService) mutate(id string, fn func(*models.Session)) (models.Session, error) {
	var out models.Session
	err := s.store.Update(func(tx *database.Tx) error {
		updated, ok, err := tx.UpdateSession(id, fn)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSessionNotFound
		}
		out = updated
		return nil
	})
	return out, err
}

// AddReport stores the report for sessionID, replacing any earlier one, and
// marks the session completed. The report is kept even when no such session
// exists.
func (s *SessionService) AddReport(ctx context.Context, sessionID string, in models.ReportInput) (models.Report, error) {
	return call(ctx, s.sim, "addReport", func() (models.Report, error) {
		var report models.Report
		err := s.store.Update(func(tx *database.Tx) error {
			report = models.Report{
				SessionID: sessionID,
				Summary:   in.Summary,
				Topics:    in.Topics,
				Progress:  in.Progress,
				Homework:  in.Homework,
				Extra:     in.Extra,
				CreatedAt: tx.Now(),
			}
			if err := tx.PutReport(report); err != nil {
				return err
			}
			_, ok, err := tx.UpdateSession(sessionID, func(sess *models.Session) { sess.Status = models.SessionCompleted })
			if err != nil {
				return err
			}
			if !ok {
				s.logger.Warn("report stored for unknown session", zap.String("session_id", sessionID))
			}
			return nil
		})
		return report.Clone(), err
	})
}

func (s *SessionService) GetReport(ctx context.Context, sessionID string) (models.Report, bool, error) {
	r, err := call(ctx, s.sim, "getReport", func() (found[models.Report], error) {
		var r found[models.Report]
		err := s.store.View(func(tx *database.Tx) error {
			r.value, r.ok = tx.Report(sessionID)
			return nil
		})
		return r, err
	})
	return r.value, r.ok, err
}
