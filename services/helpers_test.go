package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/models"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type publisherFunc func(models.Notification)

func (f publisherFunc) Publish(n models.Notification) { f(n) }

func newTestServices(t *testing.T, opts Options) (*Services, *database.Store) {
	t.Helper()
	store := database.NewStore(database.WithClock(func() time.Time { return fixedNow }))
	if err := database.Seed(store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if opts.Tokens.Secret == nil {
		opts.Tokens.Secret = []byte("test-secret")
	}
	return New(store, NewSimulator(0, nil), nil, opts), store
}

type dump struct {
	Sessions      []models.Session
	Profiles      []models.Profile
	Slots         []models.AvailableSlot
	Requests      []models.RegistrationRequest
	Notifications []models.Notification
}

func snapshot(t *testing.T, store *database.Store) dump {
	t.Helper()
	var d dump
	err := store.View(func(tx *database.Tx) error {
		d = dump{
			Sessions:      tx.Sessions(nil),
			Profiles:      tx.Profiles(nil),
			Slots:         tx.Slots(nil),
			Requests:      tx.Requests(nil),
			Notifications: tx.Notifications(nil),
		}
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return d
}

func sameState(a, b dump) bool {
	return reflect.DeepEqual(a, b)
}

func ctx() context.Context {
	return context.Background()
}
