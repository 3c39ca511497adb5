package models

import "strings"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// RegistrationRequest is a student's ask for a session with a tutor.
// PreferredTime has the form "HH:MM-HH:MM".
type RegistrationRequest struct {
	ID              string        `json:"id"`
	StudentID       string        `json:"student_id"`
	TutorID         string        `json:"tutor_id"`
	StudentName     string        `json:"student_name"`
	Subject         string        `json:"subject"`
	PreferredDate   string        `json:"preferred_date"`
	PreferredTime   string        `json:"preferred_time"`
	Status          RequestStatus `json:"status"`
	RequestDate     string        `json:"request_date"`
	Notes           string        `json:"notes"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
}

func (r RegistrationRequest) IsPending() bool {
	return r.Status == RequestPending
}

// StartTime is the part of PreferredTime before the "-" separator.
func (r RegistrationRequest) StartTime() string {
	start, _, _ := strings.Cut(r.PreferredTime, "-")
	return strings.TrimSpace(start)
}

func (r RegistrationRequest) Clone() RegistrationRequest {
	if r.RejectionReason != nil {
		v := *r.RejectionReason
		r.RejectionReason = &v
	}
	return r
}

type RequestInput struct {
	StudentID     string `json:"student_id"`
	TutorID       string `json:"tutor_id"`
	StudentName   string `json:"student_name"`
	Subject       string `json:"subject"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Notes         string `json:"notes"`
}
