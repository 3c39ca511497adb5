package models

import (
	"slices"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

// Profile is a user of the platform. Student-only fields are Faculty, Major,
// MSSV and GPA; tutor-only fields are Subjects, Rating and TotalSessions.
type Profile struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	Phone     string  `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       string  `json:"bio,omitempty"`

	Faculty string   `json:"faculty,omitempty"`
	Major   string   `json:"major,omitempty"`
	MSSV    string   `json:"mssv,omitempty"`
	GPA     *float64 `json:"gpa,omitempty"`

	Subjects      []string `json:"subjects,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	TotalSessions *int     `json:"total_sessions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (p Profile) Clone() Profile {
	p.Subjects = slices.Clone(p.Subjects)
	if p.AvatarURL != nil {
		v := *p.AvatarURL
		p.AvatarURL = &v
	}
	if p.GPA != nil {
		v := *p.GPA
		p.GPA = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		p.Rating = &v
	}
	if p.TotalSessions != nil {
		v := *p.TotalSessions
		p.TotalSessions = &v
	}
	return p
}

type ProfilePatch struct {
	Name          *string   `json:"name,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	Faculty       *string   `json:"faculty,omitempty"`
	Major         *string   `json:"major,omitempty"`
	MSSV          *string   `json:"mssv,omitempty"`
	GPA           *float64  `json:"gpa,omitempty"`
	Subjects      *[]string `json:"subjects,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	TotalSessions *int      `json:"total_sessions,omitempty"`
}

// Apply overwrites the fields set in p. Subjects is replaced as a whole.
func (p ProfilePatch) Apply(pr *Profile) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Email != nil {
		pr.Email = *p.Email
	}
	if p.Phone != nil {
		pr.Phone = *p.Phone
	}
	if p.AvatarURL != nil {
		v := *p.AvatarURL
		pr.AvatarURL = &v
	}
	if p.Bio != nil {
		pr.Bio = *p.Bio
	}
	if p.Faculty != nil {
		pr.Faculty = *p.Faculty
	}
	if p.Major != nil {
		pr.Major = *p.Major
	}
	if p.MSSV != nil {
		pr.MSSV = *p.MSSV
	}
	if p.GPA != nil {
		v := *p.GPA
		pr.GPA = &v
	}
	if p.Subjects != nil {
		pr.Subjects = slices.Clone(*p.Subjects)
	}
	if p.Rating != nil {
		v := *p.Rating
		pr.Rating = &v
	}
	if p.TotalSessions != nil {
		v := *p.TotalSessions
		pr.TotalSessions = &v
	}
}

type SignupInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     Role     `json:"role"`
	Phone    string   `json:"phone"`
	Faculty  string   `json:"faculty"`
	Major    string   `json:"major"`
	MSSV     string   `json:"mssv"`
	Subjects []string `json:"subjects"`
}

// Credential maps a sign-in email to a profile. Never serialized.
type Credential struct {
	Email        string
	PasswordHash []byte
	UserID       string
}
