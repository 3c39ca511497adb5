package services

import (
	"testing"

	"github.com/anjiri1684/tutoring_api/models"
)

func TestCreateNotificationPublishes(t *testing.T) {
	var published []models.Notification
	svc, _ := newTestServices(t, Options{Publisher: publisherFunc(func(n models.Notification) {
		published = append(published, n)
	})})

	n, err := svc.Notifications.CreateNotification(ctx(), models.NotificationInput{
		UserID: "2", Type: "registration_request", Title: "Yêu cầu mới", Message: "Có yêu cầu đăng ký mới",
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.ID != "2" || n.Read || !n.CreatedAt.Equal(fixedNow) {
		t.Errorf("notification = %+v", n)
	}
	if len(published) != 1 || published[0].ID != n.ID {
		t.Errorf("published = %+v", published)
	}

	list, _ := svc.Notifications.GetUserNotifications(ctx(), "2")
	if len(list) != 1 || list[0].ID != n.ID {
		t.Errorf("tutor notifications = %+v", list)
	}
}

func TestMarkAsRead(t *testing.T) {
	svc, _ := newTestServices(t, Options{})

	n, err := svc.Notifications.MarkAsRead(ctx(), "1")
	if err != nil {
		t.Fatal(err)
	}
	if !n.Read {
		t.Fatal("not read")
	}
	n, err = svc.Notifications.MarkAsRead(ctx(), "1")
	if err != nil || !n.Read {
		t.Fatalf("second mark: %+v %v", n, err)
	}

	list, _ := svc.Notifications.GetUserNotifications(ctx(), "1")
	if len(list) != 1 || !list[0].Read {
		t.Errorf("list = %+v", list)
	}
}
