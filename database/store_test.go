package database

import (
	"errors"
	"testing"

	"github.com/anjiri1684/tutoring_api/models"
)

func TestUpdateRollsBackOnError(t *testing.T) {
	store := NewStore()
	boom := errors.New("boom")

	err := store.Update(func(tx *Tx) error {
		if err := tx.InsertSession(models.Session{ID: "1"}); err != nil {
			return err
		}
		if err := tx.PutReport(models.Report{SessionID: "1"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	_ = store.View(func(tx *Tx) error {
		if n := len(tx.Sessions(nil)); n != 0 {
			t.Errorf("sessions = %d after rollback", n)
		}
		if _, ok := tx.Report("1"); ok {
			t.Error("report survived rollback")
		}
		return nil
	})
}

func TestViewIsReadOnly(t *testing.T) {
	store := NewStore()

	err := store.View(func(tx *Tx) error {
		return tx.InsertProfile(models.Profile{ID: "1"})
	})
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("err = %v, want ErrReadOnly", err)
	}
}

func TestNextIDSkipsSeededIDs(t *testing.T) {
	store := NewStore()
	if err := Seed(store); err != nil {
		t.Fatal(err)
	}

	var sessionID, profileID, requestID, notificationID string
	_ = store.Update(func(tx *Tx) error {
		sessionID = tx.NextID(KindSession)
		profileID = tx.NextID(KindProfile)
		requestID = tx.NextID(KindRequest)
		notificationID = tx.NextID(KindNotification)
		return nil
	})
	if sessionID != "4" || profileID != "6" || requestID != "3" || notificationID != "2" {
		t.Errorf("next ids = %s %s %s %s", sessionID, profileID, requestID, notificationID)
	}
}

func TestSeed(t *testing.T) {
	store := NewStore()
	if err := Seed(store); err != nil {
		t.Fatal(err)
	}

	_ = store.View(func(tx *Tx) error {
		if got := len(tx.Credentials()); got != 3 {
			t.Errorf("credentials = %d, want 3", got)
		}
		s, ok := tx.FindSession("2")
		if !ok || s.Status != models.SessionCompleted || s.Rating == nil || *s.Rating != 5 {
			t.Errorf("session 2 = %+v", s)
		}
		if got := len(tx.Slots(nil)); got != 3 {
			t.Errorf("slots = %d", got)
		}
		return nil
	})
}

func TestDeleteSlots(t *testing.T) {
	store := NewStore()
	_ = store.Update(func(tx *Tx) error {
		_ = tx.InsertSlot(models.AvailableSlot{ID: "a", TutorID: "2"})
		_ = tx.InsertSlot(models.AvailableSlot{ID: "b", TutorID: "4"})
		_ = tx.InsertSlot(models.AvailableSlot{ID: "c", TutorID: "2"})
		return nil
	})

	var removed int
	err := store.Update(func(tx *Tx) error {
		var err error
		removed, err = tx.DeleteSlots(func(s models.AvailableSlot) bool { return s.TutorID == "2" })
		return err
	})
	if err != nil || removed != 2 {
		t.Fatalf("removed = %d err = %v", removed, err)
	}
	_ = store.View(func(tx *Tx) error {
		left := tx.Slots(nil)
		if len(left) != 1 || left[0].ID != "b" {
			t.Errorf("left = %+v", left)
		}
		return nil
	})
}
