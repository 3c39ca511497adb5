package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/notifications"
	"github.com/anjiri1684/tutoring_api/services"
	"go.uber.org/zap"
)

const sessionLayout = "2006-01-02 15:04"

// sessionStart reads the session's Date and Time as a wall clock in loc.
func sessionStart(s models.Session, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(sessionLayout, s.Date+" "+s.Time, loc)
}

// SessionReminder tells both participants of a scheduled session that it
// starts soon. Each session is reminded at most once per process.
type SessionReminder struct {
	Services *services.Services
	Mailer   notifications.Mailer
	Window   time.Duration
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger

	mu   sync.Mutex
	sent map[string]struct{}
}

// NewSessionReminder accepts a nil mailer; reminders are then in-app only.
func NewSessionReminder(svc *services.Services, mailer notifications.Mailer, window time.Duration, logger *zap.Logger) *SessionReminder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionReminder{
		Services: svc,
		Mailer:   mailer,
		Window:   window,
		Location: time.Local,
		Now:      time.Now,
		Logger:   logger,
		sent:     make(map[string]struct{}),
	}
}

// Run satisfies cron.Job.
func (j *SessionReminder) Run() {
	if _, err := j.RunContext(context.Background()); err != nil {
		j.Logger.Error("session reminder failed", zap.Error(err))
	}
}

// RunContext sends the due reminders and reports how many sessions were
// reminded.
func (j *SessionReminder) RunContext(ctx context.Context) (int, error) {
	j.Logger.Debug("running job: session reminders")

	all, err := j.Services.Sessions.GetUserSessions(ctx, "", models.RoleAdmin)
	if err != nil {
		return 0, err
	}

	now := j.Now()
	upper := now.Add(j.Window)
	reminded := 0
	for _, s := range all {
		if s.Status != models.SessionScheduled {
			continue
		}
		start, err := sessionStart(s, j.Location)
		if err != nil {
			j.Logger.Warn("unparseable session start", zap.String("session_id", s.ID), zap.Error(err))
			continue
		}
		if start.Before(now) || start.After(upper) {
			continue
		}
		if !j.claim(s.ID) {
			continue
		}
		if err := j.remind(ctx, s, start); err != nil {
			j.release(s.ID)
			return reminded, err
		}
		reminded++
	}
	return reminded, nil
}

func (j *SessionReminder) claim(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.sent[id]; ok {
		return false
	}
	j.sent[id] = struct{}{}
	return true
}

func (j *SessionReminder) release(id string) {
	j.mu.Lock()
	delete(j.sent, id)
	j.mu.Unlock()
}

func (j *SessionReminder) remind(ctx context.Context, s models.Session, start time.Time) error {
	j.Logger.Info("sending reminder", zap.String("session_id", s.ID))

	title := "Upcoming session"
	message := fmt.Sprintf("Your %s session starts at %s on %s (%s).", s.Subject, s.Time, s.Date, s.Location)
	for _, userID := range []string{s.StudentID, s.TutorID} {
		_, err := j.Services.Notifications.CreateNotification(ctx, models.NotificationInput{
			UserID:  userID,
			Type:    "session_reminder",
			Title:   title,
			Message: message,
			Link:    "/sessions/" + s.ID,
		})
		if err != nil {
			return err
		}
		j.email(ctx, userID, start, s)
	}
	return nil
}

// email is best effort; a failed send never blocks the in-app reminder.
func (j *SessionReminder) email(ctx context.Context, userID string, start time.Time, s models.Session) {
	if j.Mailer == nil {
		return
	}
	p, err := j.Services.Profiles.GetProfile(ctx, userID)
	if err != nil {
		j.Logger.Warn("reminder email skipped", zap.String("user_id", userID), zap.Error(err))
		return
	}
	body := fmt.Sprintf(
		"<h1>Session Reminder</h1><p>Hi %s,</p><p>This is a friendly reminder that your %s session starts at %s.</p><p><b>Location:</b> %s</p>",
		p.Name, s.Subject, start.Format(time.Kitchen), s.Location,
	)
	if err := j.Mailer.SendEmail(ctx, p.Name, p.Email, "Reminder: your session starts soon", body); err != nil {
		j.Logger.Warn("failed to send reminder email", zap.String("to", p.Email), zap.Error(err))
	}
}
