package database

import (
	"fmt"
	"sync"

	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/utils"
	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	email    string
	password string
	userID   string
}

// Demo accounts available right after startup.
var seedAccounts = []seedAccount{
	{email: "student@hcmut.edu.vn", password: "password123", userID: "1"},
	{email: "tutor@hcmut.edu.vn", password: "password123", userID: "2"},
	{email: "admin@hcmut.edu.vn", password: "admin123", userID: "3"},
}

var (
	hashOnce     sync.Once
	seededHashes [][]byte
	hashErr      error
)

// Hashing is slow on purpose; do it once per process.
func seedCredentials() ([]models.Credential, error) {
	hashOnce.Do(func() {
		for _, acc := range seedAccounts {
			h, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
			if err != nil {
				hashErr = err
				return
			}
			seededHashes = append(seededHashes, h)
		}
	})
	if hashErr != nil {
		return nil, hashErr
	}
	creds := make([]models.Credential, len(seedAccounts))
	for i, acc := range seedAccounts {
		creds[i] = models.Credential{Email: acc.email, PasswordHash: seededHashes[i], UserID: acc.userID}
	}
	return creds, nil
}

func ptr[T any](v T) *T { return &v }

// Seed loads the demo data set into an empty store.
func Seed(store *Store) error {
	creds, err := seedCredentials()
	if err != nil {
		return fmt.Errorf("hash seed passwords: %w", err)
	}

	return store.Update(func(tx *Tx) error {
		now := tx.Now()

		profiles := []models.Profile{
			{
				ID: "1", Name: "Nguyễn Văn An", Email: "student@hcmut.edu.vn", Role: models.RoleStudent,
				Faculty: "Khoa học và Kỹ thuật Máy tính", Major: "Khoa học Máy tính", MSSV: "2210001", GPA: ptr(3.4),
			},
			{
				ID: "2", Name: "Trần Thị Bình", Email: "tutor@hcmut.edu.vn", Role: models.RoleTutor,
				Subjects: []string{"Giải tích 1", "Vật lý 1", "Xác suất thống kê"}, Rating: ptr(4.8), TotalSessions: ptr(42),
			},
			{ID: "3", Name: "Quản trị viên", Email: "admin@hcmut.edu.vn", Role: models.RoleAdmin},
			{
				ID: "4", Name: "Lê Minh Châu", Email: "chau.le@hcmut.edu.vn", Role: models.RoleTutor,
				Subjects: []string{"Cấu trúc dữ liệu và giải thuật", "Lập trình nâng cao"}, Rating: ptr(4.6), TotalSessions: ptr(17),
			},
			{
				ID: "5", Name: "Phạm Quốc Dũng", Email: "dung.pham@hcmut.edu.vn", Role: models.RoleStudent,
				Faculty: "Điện - Điện tử", Major: "Kỹ thuật Điện tử", MSSV: "2210002", GPA: ptr(3.1),
			},
		}
		for _, p := range profiles {
			p.CreatedAt = now
			if err := tx.InsertProfile(p); err != nil {
				return err
			}
		}
		for _, c := range creds {
			if err := tx.InsertCredential(c); err != nil {
				return err
			}
		}

		sessions := []models.Session{
			{
				ID: "1", TutorID: "2", StudentID: "1", Subject: "Giải tích 1", Date: "2026-10-20", Time: "09:00",
				Duration: 120, Location: "H6-301", Type: models.SessionInPerson, Status: models.SessionScheduled,
				Notes: "Ôn tập tích phân",
			},
			{
				ID: "2", TutorID: "2", StudentID: "1", Subject: "Vật lý 1", Date: "2026-10-01", Time: "14:00",
				Duration: 90, Location: "Google Meet", Type: models.SessionOnline, Status: models.SessionCompleted,
				Notes: "Động lực học", Rating: ptr(5), Feedback: ptr("Giải thích rất dễ hiểu"),
			},
			{
				ID: "3", TutorID: "4", StudentID: "5", Subject: "Cấu trúc dữ liệu và giải thuật", Date: "2026-10-22", Time: "18:00",
				Duration: 120, Location: "Microsoft Teams", Type: models.SessionOnline, Status: models.SessionPending,
			},
		}
		for _, s := range sessions {
			s.CreatedAt = now
			if err := tx.InsertSession(s); err != nil {
				return err
			}
		}

		slots := []models.AvailableSlot{
			{TutorID: "2", DayOfWeek: 1, StartTime: "08:00", EndTime: "10:00", IsAvailable: true, Location: "H6-301"},
			{TutorID: "2", DayOfWeek: 3, StartTime: "14:00", EndTime: "16:00", IsAvailable: true, Location: "H6-301"},
			{TutorID: "4", DayOfWeek: 5, StartTime: "18:00", EndTime: "20:00", IsAvailable: true, Location: "Online"},
		}
		for _, s := range slots {
			s.ID = utils.NewSlotID()
			if err := tx.InsertSlot(s); err != nil {
				return err
			}
		}

		requests := []models.RegistrationRequest{
			{
				ID: "1", StudentID: "1", TutorID: "2", StudentName: "Nguyễn Văn An", Subject: "Xác suất thống kê",
				PreferredDate: "2026-10-24", PreferredTime: "14:00-16:00", Status: models.RequestPending,
				RequestDate: "2026-10-14", Notes: "Chuẩn bị thi giữa kỳ",
			},
			{
				ID: "2", StudentID: "5", TutorID: "2", StudentName: "Phạm Quốc Dũng", Subject: "Giải tích 1",
				PreferredDate: "2026-10-25", PreferredTime: "08:00-10:00", Status: models.RequestPending,
				RequestDate: "2026-10-15",
			},
		}
		for _, r := range requests {
			if err := tx.InsertRequest(r); err != nil {
				return err
			}
		}

		return tx.InsertNotification(models.Notification{
			ID: "1", UserID: "1", Type: "session_scheduled", Title: "Buổi học đã được xác nhận",
			Message: "Buổi Giải tích 1 ngày 2026-10-20 lúc 09:00 đã được lên lịch.", Link: "/sessions/1",
			CreatedAt: now,
		})
	})
}
