package models

import "time"

type SessionType string

const (
	SessionInPerson SessionType = "in-person"
	SessionOnline   SessionType = "online"
)

type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session is a tutoring meeting between one tutor and one student.
// Date is "2006-01-02" and Time is "15:04"; both are stored as given.
type Session struct {
	ID        string        `json:"id"`
	TutorID   string        `json:"tutor_id"`
	StudentID string        `json:"student_id"`
	Subject   string        `json:"subject"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Duration  int           `json:"duration"`
	Location  string        `json:"location"`
	Type      SessionType   `json:"type"`
	Status    SessionStatus `json:"status"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	Rating    *int          `json:"rating,omitempty"`
	Feedback  *string       `json:"feedback,omitempty"`
}

type SessionInput struct {
	TutorID   string      `json:"tutor_id"`
	StudentID string      `json:"student_id"`
	Subject   string      `json:"subject"`
	Date      string      `json:"date"`
	Time      string      `json:"time"`
	Duration  int         `json:"duration"`
	Location  string      `json:"location"`
	Type      SessionType `json:"type"`
	Notes     string      `json:"notes"`
}

// SessionPatch is a shallow merge: nil fields keep their current value.
type SessionPatch struct {
	TutorID   *string        `json:"tutor_id,omitempty"`
	StudentID *string        `json:"student_id,omitempty"`
	Subject   *string        `json:"subject,omitempty"`
	Date      *string        `json:"date,omitempty"`
	Time      *string        `json:"time,omitempty"`
	Duration  *int           `json:"duration,omitempty"`
	Location  *string        `json:"location,omitempty"`
	Type      *SessionType   `json:"type,omitempty"`
	Status    *SessionStatus `json:"status,omitempty"`
	Notes     *string        `json:"notes,omitempty"`
	Rating    *int           `json:"rating,omitempty"`
	Feedback  *string        `json:"feedback,omitempty"`
}

func (p SessionPatch) Apply(s *Session) {
	if p.TutorID != nil {
		s.TutorID = *p.TutorID
	}
	if p.StudentID != nil {
		s.StudentID = *p.StudentID
	}
	if p.Subject != nil {
		s.Subject = *p.Subject
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Time != nil {
		s.Time = *p.Time
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.Rating != nil {
		r := *p.Rating
		s.Rating = &r
	}
	if p.Feedback != nil {
		f := *p.Feedback
		s.Feedback = &f
	}
}

// Clone returns a copy that shares no pointers with s.
func (s Session) Clone() Session {
	if s.Rating != nil {
		r := *s.Rating
		s.Rating = &r
	}
	if s.Feedback != nil {
		f := *s.Feedback
		s.Feedback = &f
	}
	return s
}
