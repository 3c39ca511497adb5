package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/tutoring_api/models"
)

type fakeConn struct {
	writes chan interface{}
	fail   bool
	closed chan struct{}
}

func newFakeConn(fail bool) *fakeConn {
	return &fakeConn{writes: make(chan interface{}, 4), fail: fail, closed: make(chan struct{})}
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.fail {
		return errors.New("broken pipe")
	}
	f.writes <- v
	return nil
}

func (f *fakeConn) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func TestHubDeliversToUser(t *testing.T) {
	h := startHub(t)
	conn := newFakeConn(false)
	h.Register(&Client{UserID: "1", Conn: conn})

	h.Publish(models.Notification{ID: "9", UserID: "2"})
	h.Publish(models.Notification{ID: "10", UserID: "1"})

	select {
	case v := <-conn.writes:
		env, ok := v.(Envelope)
		if !ok || env.Type != "notification" || env.Data.(models.Notification).ID != "10" {
			t.Fatalf("got %+v", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery")
	}
	select {
	case v := <-conn.writes:
		t.Fatalf("unexpected second delivery %+v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDropsBrokenConnection(t *testing.T) {
	h := startHub(t)
	conn := newFakeConn(true)
	h.Register(&Client{UserID: "1", Conn: conn})

	h.Publish(models.Notification{ID: "1", UserID: "1"})

	select {
	case <-conn.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("connection not closed")
	}
	deadline := time.Now().Add(2 * time.Second)
	for h.Connected("1") {
		if time.Now().After(deadline) {
			t.Fatal("client still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestUnregisterIgnoresStaleConnection(t *testing.T) {
	h := startHub(t)
	old, current := newFakeConn(false), newFakeConn(false)
	h.Register(&Client{UserID: "1", Conn: old})
	h.Register(&Client{UserID: "1", Conn: current})
	h.Unregister(&Client{UserID: "1", Conn: old})

	// Register is unbuffered, so once it returns the earlier messages were handled.
	h.Register(&Client{UserID: "2", Conn: newFakeConn(false)})
	if !h.Connected("1") {
		t.Fatal("current connection removed by stale unregister")
	}
}

func TestStoppedHubDoesNotBlock(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	returned := make(chan struct{})
	go func() {
		client := &Client{UserID: "1", Conn: newFakeConn(false)}
		h.Register(client)
		h.Unregister(client)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Register/Unregister blocked after the hub stopped")
	}
}
