package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sharecgt/internal/ingestion"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockCalcService{run: sampleRun()}
	r := NewRouter(NewHandler(svc, ingestion.UploadLimits{MaxFiles: 1, MaxFileBytes: 1 << 10}), RouterOptions{})

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/calculators/version", http.StatusOK},
		{http.MethodGet, "/api/v1/calculations/" + testRunID.String(), http.StatusOK},
		{http.MethodPost, "/api/v1/calculators/capital-gains", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("%s %s: want %d got %d", tc.method, tc.path, tc.want, w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s %s: expected X-Request-ID header", tc.method, tc.path)
		}
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockCalcService{}, ingestion.UploadLimits{}), RouterOptions{RateLimit: 2})

	var last int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/calculators/version", nil))
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("want 429 after limit, got %d", last)
	}
}
