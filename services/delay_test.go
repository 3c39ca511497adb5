package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDelayWaits(t *testing.T) {
	start := time.Now()
	if err := Delay(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("returned after %v", elapsed)
	}
}

func TestDelayHonoursCancel(t *testing.T) {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Delay(c, time.Minute)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("did not stop early")
	}
}

func TestCompletionFollowsDelayNotCallOrder(t *testing.T) {
	slow := NewSimulator(60*time.Millisecond, nil)
	fast := NewSimulator(0, nil)
	done := make(chan string, 2)

	go func() {
		_, _ = call(context.Background(), slow, "slow", func() (int, error) { return 0, nil })
		done <- "slow"
	}()
	time.Sleep(5 * time.Millisecond)
	go func() {
		_, _ = call(context.Background(), fast, "fast", func() (int, error) { return 0, nil })
		done <- "fast"
	}()

	if first := <-done; first != "fast" {
		t.Errorf("first completion = %s, want fast", first)
	}
	<-done
}
