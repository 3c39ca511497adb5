package services

import (
	"errors"
	"testing"

	"github.com/anjiri1684/tutoring_api/models"
)

func TestApproveRequestCreatesOneSession(t *testing.T) {
	svc, store := newTestServices(t, Options{})
	before := snapshot(t, store)

	got, err := svc.Schedule.ApproveRequest(ctx(), "1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Request.Status != models.RequestApproved {
		t.Errorf("request status = %q", got.Request.Status)
	}

	after := snapshot(t, store)
	if len(after.Sessions) != len(before.Sessions)+1 {
		t.Fatalf("sessions %d -> %d, want exactly one more", len(before.Sessions), len(after.Sessions))
	}

	s := got.Session
	want := models.Session{
		ID: s.ID, TutorID: "2", StudentID: "1", Subject: "Xác suất thống kê", Date: "2026-10-24", Time: "14:00",
		Duration: 120, Location: "TBA", Type: models.SessionInPerson, Status: models.SessionScheduled,
		Notes: "Chuẩn bị thi giữa kỳ", CreatedAt: fixedNow,
	}
	if s != want {
		t.Errorf("session = %+v\nwant %+v", s, want)
	}
	if last := after.Sessions[len(after.Sessions)-1]; last.ID != s.ID {
		t.Errorf("last stored session %s, want %s", last.ID, s.ID)
	}
}

func TestApproveRequestOnlyOnce(t *testing.T) {
	svc, store := newTestServices(t, Options{})

	if _, err := svc.Schedule.ApproveRequest(ctx(), "1"); err != nil {
		t.Fatal(err)
	}
	before := snapshot(t, store)
	if _, err := svc.Schedule.ApproveRequest(ctx(), "1"); !errors.Is(err, ErrRequestProcessed) {
		t.Fatalf("second approve err = %v", err)
	}
	if _, err := svc.Schedule.RejectRequest(ctx(), "1", nil); !errors.Is(err, ErrRequestProcessed) {
		t.Fatalf("reject after approve err = %v", err)
	}
	if !sameState(before, snapshot(t, store)) {
		t.Fatal("store changed")
	}
}

func TestRejectRequest(t *testing.T) {
	svc, store := newTestServices(t, Options{})
	before := snapshot(t, store)
	reason := "Trùng lịch dạy"

	got, err := svc.Schedule.RejectRequest(ctx(), "2", &reason)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.RequestRejected {
		t.Errorf("status = %q", got.Status)
	}
	if got.RejectionReason == nil || *got.RejectionReason != reason {
		t.Errorf("reason = %v", got.RejectionReason)
	}
	if len(snapshot(t, store).Sessions) != len(before.Sessions) {
		t.Error("reject created a session")
	}
}

func TestRejectRequestWithoutReason(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	got, err := svc.Schedule.RejectRequest(ctx(), "2", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.RejectionReason != nil {
		t.Errorf("reason = %q, want none", *got.RejectionReason)
	}
}

func TestCreateRegistrationRequest(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	req, err := svc.Schedule.CreateRegistrationRequest(ctx(), models.RequestInput{
		StudentID: "5", TutorID: "4", StudentName: "Phạm Quốc Dũng", Subject: "Lập trình nâng cao",
		PreferredDate: "2026-11-01", PreferredTime: "09:30-11:30",
	})
	if err != nil {
		t.Fatal(err)
	}
	if req.ID != "3" || req.Status != models.RequestPending || req.RequestDate != "2026-10-15" {
		t.Errorf("request = %+v", req)
	}

	list, err := svc.Schedule.GetRegistrationRequests(ctx(), "4")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != req.ID {
		t.Errorf("tutor 4 requests = %+v", list)
	}

	approved, err := svc.Schedule.ApproveRequest(ctx(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if approved.Session.Time != "09:30" {
		t.Errorf("time = %q, want 09:30", approved.Session.Time)
	}
}

func TestUpdateAvailableSlotsReplaces(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	off := false
	input := []models.SlotInput{
		{DayOfWeek: 2, StartTime: "07:00", EndTime: "09:00", Location: "B4-201"},
		{DayOfWeek: 4, StartTime: "13:00", EndTime: "15:00", Location: "Online", IsAvailable: &off},
	}

	first, err := svc.Schedule.UpdateAvailableSlots(ctx(), "2", input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Schedule.UpdateAvailableSlots(ctx(), "2", input)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].ID == first[1].ID {
		t.Error("ids repeat within a batch")
	}

	stored, err := svc.Schedule.GetAvailableSlots(ctx(), "2")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != len(input) {
		t.Fatalf("tutor has %d slots, want %d", len(stored), len(input))
	}
	for i := range stored {
		a, b := first[i], stored[i]
		a.ID, b.ID = "", ""
		if a != b {
			t.Errorf("slot %d = %+v, want %+v", i, b, a)
		}
		if stored[i].ID != second[i].ID {
			t.Errorf("slot %d id %s, want the second batch's %s", i, stored[i].ID, second[i].ID)
		}
	}
	if stored[0].IsAvailable != true || stored[1].IsAvailable != false {
		t.Errorf("availability flags = %v, %v", stored[0].IsAvailable, stored[1].IsAvailable)
	}

	other, _ := svc.Schedule.GetAvailableSlots(ctx(), "4")
	if len(other) != 1 {
		t.Errorf("tutor 4 slots touched: %d", len(other))
	}
}

func TestAddAndRemoveSlot(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	sl, err := svc.Schedule.AddAvailableSlot(ctx(), "4", models.SlotInput{DayOfWeek: 6, StartTime: "08:00", EndTime: "09:00"})
	if err != nil {
		t.Fatal(err)
	}
	if !sl.IsAvailable || sl.TutorID != "4" {
		t.Errorf("slot = %+v", sl)
	}

	ok, err := svc.Schedule.RemoveAvailableSlot(ctx(), sl.ID)
	if err != nil || !ok {
		t.Fatalf("remove: ok=%v err=%v", ok, err)
	}
	ok, err = svc.Schedule.RemoveAvailableSlot(ctx(), sl.ID)
	if ok || !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("second remove: ok=%v err=%v", ok, err)
	}

	next, err := svc.Schedule.AddAvailableSlot(ctx(), "4", models.SlotInput{DayOfWeek: 6})
	if err != nil {
		t.Fatal(err)
	}
	if next.ID == sl.ID {
		t.Error("slot id reused after removal")
	}
}
