package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/seo-radar/api/internal/config"
)

func TestRequestID(t *testing.T) {
	e := echo.New()

	t.Run("generates id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var seen string
		handler := RequestID()(func(c echo.Context) error {
			seen = RequestIDFromContext(c)
			return nil
		})
		if err := handler(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen == "" {
			t.Fatalf("expected generated request id")
		}
		if rec.Header().Get("X-Request-ID") != seen {
			t.Fatalf("expected request id echoed in response header")
		}
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "caller-42")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := RequestID()(func(c echo.Context) error { return nil })
		if err := handler(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Header().Get("X-Request-ID") != "caller-42" {
			t.Fatalf("expected caller id preserved, got %q", rec.Header().Get("X-Request-ID"))
		}
	})
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(ContextKeyUserRole, role)
		}

		handler := RequireRole("admin")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		_ = handler(c)
		return rec
	}

	if rec := run(nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without role, got %d", rec.Code)
	}
	if rec := run("user"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", rec.Code)
	}
	if rec := run("admin"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestSearchRateLimiter(t *testing.T) {
	e := echo.New()

	limiter := SearchRateLimiter(config.RateLimitConfig{Requests: 2, Interval: time.Hour})
	handler := limiter(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/companies/x/competitors/search", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		_ = handler(c)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests allowed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request limited, got %v", codes)
	}
}

func TestSearchRateLimiterDisabled(t *testing.T) {
	e := echo.New()

	limiter := SearchRateLimiter(config.RateLimitConfig{})
	handler := limiter(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/companies/x/competitors/search", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		_ = handler(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected limiter disabled, got %d on request %d", rec.Code, i)
		}
	}
}

func TestUserIDFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if got := UserIDFromContext(c); got != "" {
		t.Fatalf("expected empty id for anonymous context, got %q", got)
	}

	c.Set(ContextKeyUserID, "user-7")
	if got := UserIDFromContext(c); got != "user-7" {
		t.Fatalf("expected stored id, got %q", got)
	}
}
