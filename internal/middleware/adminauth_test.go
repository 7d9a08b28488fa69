package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/stats", AdminSecret(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"registrations": 0})
	})
	return r
}

func TestAdminSecret(t *testing.T) {
	const secret = "opensesame"

	tests := []struct {
		name     string
		url      string
		header   string
		wantCode int
	}{
		{"query token", "/api/stats?secret=opensesame", "", http.StatusOK},
		{"header token", "/api/stats", "opensesame", http.StatusOK},
		{"wrong query token", "/api/stats?secret=nope", "", http.StatusUnauthorized},
		{"wrong header token", "/api/stats", "nope", http.StatusUnauthorized},
		{"missing token", "/api/stats", "", http.StatusUnauthorized},
		{"empty query token falls back to header", "/api/stats?secret=", "opensesame", http.StatusOK},
		{"query wins over header", "/api/stats?secret=nope", "opensesame", http.StatusUnauthorized},
	}

	r := adminTestRouter(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set(AdminSecretHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestAdminSecretUnconfigured(t *testing.T) {
	// No configured secret must not mean open access.
	r := adminTestRouter("")
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when no secret is configured", w.Code)
	}
}
