package monitoring

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(OperationCounter.WithLabelValues("getSession", "error"))
	ObserveOperation("getSession", time.Now(), errors.New("boom"))
	if got := testutil.ToFloat64(OperationCounter.WithLabelValues("getSession", "error")); got != before+1 {
		t.Fatalf("counter = %v, want %v", got, before+1)
	}
}

func TestMiddlewareCountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	counter := RequestCounter.WithLabelValues(fiber.MethodGet, "/items/:id", "418")
	before := testutil.ToFloat64(counter)
	if _, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/items/7", nil), -1); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("counter = %v, want %v", got, before+1)
	}
}
