package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thakirni-app/config"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/protected", func(c *gin.Context) {
		sess, ok := session.FromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": sess.Email})
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := newAuthRouter()

	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": uuid.NewString(),
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareInstallsSession(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := newAuthRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": uuid.NewString(),
		"email":   "user@example.com",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthMiddlewareRejectsTokenWithoutUserID(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := newAuthRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireRole(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuthMiddleware(), RequireRole("admin"))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": uuid.NewString(),
		"email":   "user@example.com",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.Code)
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(OptionalAuth())
	r.GET("/open", func(c *gin.Context) {
		if _, ok := session.FromContext(c.Request.Context()); ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("anonymous request should pass, got %d", resp.Code)
	}
	if resp.Body.String() != `{"anonymous":true}` {
		t.Errorf("unexpected body %s", resp.Body.String())
	}
}
