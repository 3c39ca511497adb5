package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewBrevoServiceDisabledWithoutSettings(t *testing.T) {
	if s := NewBrevoService("", "noreply@hcmut.edu.vn", "Tutor", nil); s != nil {
		t.Fatal("expected nil service without API key")
	}
}

func TestSendEmail(t *testing.T) {
	var got brevoPayload
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"x"}`))
	}))
	defer srv.Close()

	s := NewBrevoService("key-123", "noreply@hcmut.edu.vn", "Tutor", nil)
	s.Endpoint = srv.URL

	if err := s.SendEmail(context.Background(), "", "an.nguyen@hcmut.edu.vn", "Hi", "<p>x</p>"); err != nil {
		t.Fatalf("SendEmail: %v", err)
	}
	if apiKey != "key-123" {
		t.Errorf("api-key header = %q", apiKey)
	}
	if got.To[0]["name"] != "an.nguyen" || got.Subject != "Hi" {
		t.Errorf("payload = %+v", got)
	}
}

func TestSendEmailErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter"}`))
	}))
	defer srv.Close()

	s := NewBrevoService("key", "noreply@hcmut.edu.vn", "Tutor", nil)
	s.Endpoint = srv.URL

	if err := s.SendEmail(context.Background(), "A", "not-an-email", "s", "b"); err == nil {
		t.Error("expected invalid recipient error")
	}
	if err := s.SendEmail(context.Background(), "A", "a@b.c", "s", "b"); err == nil {
		t.Error("expected API error")
	}
}
