package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDAndLogger(t *testing.T) {
	var logs bytes.Buffer
	log := logger.New(&logs, "test", logger.LevelInfo)

	r := gin.New()
	r.Use(RequestID(), Logger(log))
	r.GET("/ping", func(c *gin.Context) {
		log.Info(c.Request.Context(), "handling")
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "req-123" {
		t.Errorf("response request id = %q", got)
	}
	if n := strings.Count(logs.String(), `"request_id":"req-123"`); n != 2 {
		t.Errorf("request id logged %d times, want 2:\n%s", n, logs.String())
	}
	if !strings.Contains(logs.String(), `"status":200`) {
		t.Errorf("status not logged:\n%s", logs.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if id := w.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q, want a uuid", id)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Error("third request inside the window should be rejected")
	}
	if !rl.Allow("b") {
		t.Error("other client should pass")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Error("request after the window should pass")
	}
	if rl.Clients() != 1 {
		t.Errorf("tracked clients = %d, want 1 after pruning", rl.Clients())
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(1, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 2)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v", codes)
	}

	open := gin.New()
	open.Use(RateLimit(0, time.Minute))
	open.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		open.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("disabled limiter rejected request %d", i)
		}
	}
}
