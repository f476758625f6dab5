package integrations

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newIntegrationsRouter(withSession bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	r := gin.New()
	if withSession {
		r.Use(func(c *gin.Context) {
			sess := &session.Session{UserID: uuid.New(), Email: "user@example.com"}
			c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
			c.Next()
		})
	}
	r.GET("/api/integrations/google-calendar/sync", h.Sync)
	r.GET("/api/integrations/google-calendar/connect", h.Connect)
	return r
}

func TestSyncUnauthenticated(t *testing.T) {
	r := newIntegrationsRouter(false)

	req := httptest.NewRequest(http.MethodGet, "/api/integrations/google-calendar/sync", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSyncReturnsPlaceholder(t *testing.T) {
	r := newIntegrationsRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/api/integrations/google-calendar/sync", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "coming soon") {
		t.Errorf("expected placeholder message, got %s", resp.Body.String())
	}
}

func TestConnectMissingGoogleCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	r := newIntegrationsRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/api/integrations/google-calendar/connect", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestConnectReturnsConsentURL(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	r := newIntegrationsRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/api/integrations/google-calendar/connect", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "accounts.google.com") {
		t.Errorf("expected a Google consent URL, got %s", resp.Body.String())
	}
}
