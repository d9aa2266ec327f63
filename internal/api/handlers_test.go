package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(register func(*gin.Engine, *Handler)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r, NewHandler(nil))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_RequiresCapability(t *testing.T) {
	r := newTestRouter(func(e *gin.Engine, h *Handler) {
		e.POST("/api-auth/signup", h.Signup)
	})

	w := postJSON(r, "/api-auth/signup",
		`{"username":"chef","email":"chef@example.com","password":"secret123","is_restaurant":false,"is_supplier":false}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "restaurant, a supplier, or both") {
		t.Errorf("expected capability error, got: %s", w.Body.String())
	}
}

func TestSignup_RejectsMissingFields(t *testing.T) {
	r := newTestRouter(func(e *gin.Engine, h *Handler) {
		e.POST("/api-auth/signup", h.Signup)
	})

	w := postJSON(r, "/api-auth/signup", `{"username":"chef"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateOrder_RejectsEmptyItems(t *testing.T) {
	r := newTestRouter(func(e *gin.Engine, h *Handler) {
		e.POST("/api/orders", h.CreateOrder)
	})

	w := postJSON(r, "/api/orders", `{"delivery_date":"2026-09-15","items":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}

func TestCreateOrder_RejectsZeroQuantity(t *testing.T) {
	r := newTestRouter(func(e *gin.Engine, h *Handler) {
		e.POST("/api/orders", h.CreateOrder)
	})

	w := postJSON(r, "/api/orders",
		`{"delivery_date":"2026-09-15","items":[{"product":1,"quantity":0}]}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateReview_RejectsOutOfRangeRating(t *testing.T) {
	r := newTestRouter(func(e *gin.Engine, h *Handler) {
		e.POST("/api/reviews", h.CreateReview)
	})

	for _, body := range []string{
		`{"target":"u2","rating":0}`,
		`{"target":"u2","rating":6}`,
	} {
		w := postJSON(r, "/api/reviews", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestCreateCalendarEvent_RejectsMismatchedLinks(t *testing.T) {
	r := newTestRouter(func(e *gin.Engine, h *Handler) {
		e.POST("/api/calendar", h.CreateCalendarEvent)
	})

	tests := []struct {
		name string
		body string
	}{
		{"order type without order", `{"date":"2026-09-15","event_type":"order"}`},
		{"order type with preorder", `{"date":"2026-09-15","event_type":"order","order":1,"preorder":2}`},
		{"preorder type with order", `{"date":"2026-09-15","event_type":"preorder","order":1}`},
		{"unknown type", `{"date":"2026-09-15","event_type":"meeting","order":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/calendar", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestParseAvailabilityWindow(t *testing.T) {
	to := "2026-06-30"
	badTo := "2026-05-01"

	if _, _, msg := parseAvailabilityWindow("2026-06-01", &to); msg != "" {
		t.Errorf("valid window rejected: %s", msg)
	}
	if _, _, msg := parseAvailabilityWindow("2026-06-01", &badTo); msg == "" {
		t.Error("inverted window accepted")
	}
	if _, _, msg := parseAvailabilityWindow("2026-06-01", nil); msg != "" {
		t.Errorf("open-ended window rejected: %s", msg)
	}
	if _, _, msg := parseAvailabilityWindow("June 1st", nil); msg == "" {
		t.Error("malformed date accepted")
	}
}

func TestIDParam_Invalid(t *testing.T) {
	r := newTestRouter(func(e *gin.Engine, h *Handler) {
		e.GET("/things/:id", func(c *gin.Context) {
			if _, ok := idParam(c); !ok {
				return
			}
			c.Status(http.StatusOK)
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/things/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
