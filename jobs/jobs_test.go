package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/services"
)

type recordingMailer struct {
	mu sync.Mutex
	to []string
}

func (m *recordingMailer) SendEmail(_ context.Context, _, toEmail, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, toEmail)
	return nil
}

func newServices(t *testing.T) *services.Services {
	t.Helper()
	store := database.NewStore()
	if err := database.Seed(store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return services.New(store, services.NewSimulator(0, nil), nil, services.Options{})
}

func at(hh, mm int) func() time.Time {
	return func() time.Time { return time.Date(2026, 10, 20, hh, mm, 0, 0, time.UTC) }
}

func notificationsOf(t *testing.T, svc *services.Services, userID, kind string) []models.Notification {
	t.Helper()
	all, err := svc.Notifications.GetUserNotifications(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	var out []models.Notification
	for _, n := range all {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

func TestSessionReminder(t *testing.T) {
	svc := newServices(t)
	mailer := &recordingMailer{}
	job := NewSessionReminder(svc, mailer, time.Hour, nil)
	job.Location = time.UTC

	tests := []struct {
		name string
		now  func() time.Time
		want int
	}{
		{"too early", at(7, 30), 0},
		{"within window", at(8, 30), 1},
		{"already reminded", at(8, 45), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job.Now = tt.now
			got, err := job.RunContext(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("reminded %d sessions, want %d", got, tt.want)
			}
		})
	}

	for _, userID := range []string{"1", "2"} {
		if n := notificationsOf(t, svc, userID, "session_reminder"); len(n) != 1 {
			t.Errorf("user %s got %d reminders, want 1", userID, len(n))
		} else if n[0].Link != "/sessions/1" {
			t.Errorf("link = %q", n[0].Link)
		}
	}
	if len(mailer.to) != 2 {
		t.Errorf("emails sent to %v, want 2 recipients", mailer.to)
	}
}

func TestSessionReminderSkipsStartedSessions(t *testing.T) {
	svc := newServices(t)
	job := NewSessionReminder(svc, nil, time.Hour, nil)
	job.Location = time.UTC
	job.Now = at(9, 1)

	got, err := job.RunContext(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Fatalf("reminded %d, want 0", got)
	}
}

func TestReportReminder(t *testing.T) {
	svc := newServices(t)
	job := NewReportReminder(svc, nil)
	job.Location = time.UTC
	job.Now = at(11, 10)

	got, err := job.RunContext(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("nudged %d, want 1", got)
	}
	if n := notificationsOf(t, svc, "2", "report_missing"); len(n) != 1 {
		t.Fatalf("tutor got %d nudges", len(n))
	}

	got, _ = job.RunContext(context.Background())
	if got != 0 {
		t.Fatalf("second run nudged %d, want 0", got)
	}
}

func TestReportReminderSkipsReportedSessions(t *testing.T) {
	svc := newServices(t)
	if _, err := svc.Sessions.AddReport(context.Background(), "1", models.ReportInput{Summary: "done"}); err != nil {
		t.Fatal(err)
	}
	job := NewReportReminder(svc, nil)
	job.Location = time.UTC
	job.Now = at(11, 10)

	got, err := job.RunContext(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Fatalf("nudged %d, want 0", got)
	}
}

func TestReportReminderOverlappingRuns(t *testing.T) {
	svc := newServices(t)
	job := NewReportReminder(svc, nil)
	job.Location = time.UTC
	job.Now = at(11, 10)

	var wg sync.WaitGroup
	counts := make([]int, 4)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := job.RunContext(context.Background())
			if err != nil {
				t.Error(err)
			}
			counts[i] = n
		}(i)
	}
	wg.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	if total != 1 {
		t.Fatalf("overlapping runs nudged %d times, want 1", total)
	}
	if n := notificationsOf(t, svc, "2", "report_missing"); len(n) != 1 {
		t.Fatalf("tutor got %d nudges, want 1", len(n))
	}
}
