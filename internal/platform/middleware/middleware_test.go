package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestID_Generated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestID()(func(c echo.Context) error {
		rid, _ := c.Get("request_id").(string)
		if rid == "" {
			t.Error("expected request_id to be set")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_HonorsInbound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "rid-42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestID()(func(c echo.Context) error {
		if rid, _ := c.Get("request_id").(string); rid != "rid-42" {
			t.Errorf("expected rid-42, got %q", rid)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogger_LogsRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "rid-1")

	h := Logger(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"path":"/api/v1/dashboard"`) {
		t.Errorf("expected path in log line, got %s", out)
	}
	if !strings.Contains(out, `"request_id":"rid-1"`) {
		t.Errorf("expected request_id in log line, got %s", out)
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "rid-9")

	h := Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected error after recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 HTTPError, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "panic recovered") {
		t.Error("expected panic to be logged")
	}
	if !strings.Contains(out, `"request_id":"rid-9"`) {
		t.Errorf("expected request_id in panic log, got %s", out)
	}
}

func TestRequestIDFrom_MissingReturnsEmpty(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if rid := RequestIDFrom(c); rid != "" {
		t.Errorf("expected empty id without middleware, got %q", rid)
	}
}
