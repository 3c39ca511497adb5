package services

import (
	"errors"
	"testing"

	"github.com/anjiri1684/tutoring_api/models"
	"github.com/golang-jwt/jwt/v4"
)

func TestSignin(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	p, err := svc.Auth.Signin(ctx(), "student@hcmut.edu.vn", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != models.RoleStudent || p.ID != "1" {
		t.Errorf("profile = %+v", p)
	}

	_, err = svc.Auth.Signin(ctx(), "student@hcmut.edu.vn", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want invalid credentials", err)
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("message = %q", err.Error())
	}

	if _, err := svc.Auth.Signin(ctx(), "nobody@hcmut.edu.vn", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v", err)
	}
}

func TestSigninRoles(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	tests := []struct {
		email, password string
		role            models.Role
	}{
		{"tutor@hcmut.edu.vn", "password123", models.RoleTutor},
		{"admin@hcmut.edu.vn", "admin123", models.RoleAdmin},
	}
	for _, tt := range tests {
		p, err := svc.Auth.Signin(ctx(), tt.email, tt.password)
		if err != nil {
			t.Fatalf("%s: %v", tt.email, err)
		}
		if p.Role != tt.role {
			t.Errorf("%s: role %q, want %q", tt.email, p.Role, tt.role)
		}
	}
}

func TestSignupThenSignin(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	p, err := svc.Auth.Signup(ctx(), models.SignupInput{
		Name: "Võ Thị Hoa", Email: "hoa.vo@hcmut.edu.vn", Password: "s3cret!", MSSV: "2210003",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "6" || p.Role != models.RoleStudent {
		t.Errorf("profile = %+v", p)
	}

	got, err := svc.Auth.Signin(ctx(), "hoa.vo@hcmut.edu.vn", "s3cret!")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID {
		t.Errorf("signed in as %s, want %s", got.ID, p.ID)
	}

	students, _ := svc.Profiles.GetStudents(ctx())
	if len(students) != 3 {
		t.Errorf("students = %d, want 3", len(students))
	}
}

func TestSignupAllowsDuplicateEmail(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	p, err := svc.Auth.Signup(ctx(), models.SignupInput{Name: "Dup", Email: "student@hcmut.edu.vn"})
	if err != nil {
		t.Fatal(err)
	}
	all, _ := svc.Profiles.GetAllUsers(ctx())
	if len(all) != 6 || all[5].ID != p.ID {
		t.Fatalf("users = %d", len(all))
	}
	// The seeded credential still wins the linear search.
	got, err := svc.Auth.Signin(ctx(), "student@hcmut.edu.vn", "password123")
	if err != nil || got.ID != "1" {
		t.Fatalf("signin = %+v, %v", got, err)
	}
}

func TestIssueToken(t *testing.T) {
	svc, _ := newTestServices(t, Options{Tokens: TokenConfig{Secret: []byte("k")}})

	tok, err := svc.Auth.IssueToken(models.Profile{ID: "2", Role: models.RoleTutor})
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := jwt.Parse(tok, func(*jwt.Token) (interface{}, error) { return []byte("k"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != "2" || claims["role"] != "tutor" {
		t.Errorf("claims = %v", claims)
	}
}
