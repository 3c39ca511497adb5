package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/services"
	"go.uber.org/zap"
)

// ReportReminder nudges the tutor of a scheduled session that ended a few
// minutes ago without a report.
type ReportReminder struct {
	Services *services.Services
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger

	mu     sync.Mutex
	nudged map[string]struct{}
}

func NewReportReminder(svc *services.Services, logger *zap.Logger) *ReportReminder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportReminder{
		Services: svc,
		Location: time.Local,
		Now:      time.Now,
		Logger:   logger,
		nudged:   make(map[string]struct{}),
	}
}

func (j *ReportReminder) Run() {
	if _, err := j.RunContext(context.Background()); err != nil {
		j.Logger.Error("report reminder failed", zap.Error(err))
	}
}

func (j *ReportReminder) RunContext(ctx context.Context) (int, error) {
	j.Logger.Debug("running job: missing report check")

	all, err := j.Services.Sessions.GetUserSessions(ctx, "", models.RoleAdmin)
	if err != nil {
		return 0, err
	}

	now := j.Now()
	upper := now.Add(-5 * time.Minute)
	lower := now.Add(-15 * time.Minute)
	count := 0
	for _, s := range all {
		if s.Status != models.SessionScheduled {
			continue
		}
		start, err := sessionStart(s, j.Location)
		if err != nil {
			continue
		}
		end := start.Add(time.Duration(s.Duration) * time.Minute)
		if end.Before(lower) || end.After(upper) {
			continue
		}
		if !j.claim(s.ID) {
			continue
		}
		_, ok, err := j.Services.Sessions.GetReport(ctx, s.ID)
		if err != nil {
			j.release(s.ID)
			return count, err
		}
		if ok {
			continue
		}
		_, err = j.Services.Notifications.CreateNotification(ctx, models.NotificationInput{
			UserID:  s.TutorID,
			Type:    "report_missing",
			Title:   "Session report pending",
			Message: fmt.Sprintf("Your %s session on %s has ended. Please submit a report.", s.Subject, s.Date),
			Link:    "/sessions/" + s.ID + "/report",
		})
		if err != nil {
			j.release(s.ID)
			return count, err
		}
		count++
	}
	return count, nil
}

func (j *ReportReminder) claim(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.nudged[id]; ok {
		return false
	}
	j.nudged[id] = struct{}{}
	return true
}

func (j *ReportReminder) release(id string) {
	j.mu.Lock()
	delete(j.nudged, id)
	j.mu.Unlock()
}
