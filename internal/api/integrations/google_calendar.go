package integrations

import (
	"net/http"
	"os"

	"thakirni-app/config"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type Handler struct{}

func calendarOAuthConfig() (*oauth2.Config, bool) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, false
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  config.APP_URL + "/api/integrations/google-calendar/callback",
		Scopes:       []string{"https://www.googleapis.com/auth/calendar.events.readonly"},
		Endpoint:     google.Endpoint,
	}, true
}

// Connect returns the Google consent URL the client opens to grant calendar
// access. The state parameter ties the grant back to the session user.
func (h *Handler) Connect(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cfg, ok := calendarOAuthConfig()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google integration not configured"})
		return
	}

	url := cfg.AuthCodeURL(sess.UserID.String(), oauth2.AccessTypeOffline)
	c.JSON(http.StatusOK, gin.H{"auth_url": url})
}

// Sync is the calendar sync endpoint. The sync itself is not built yet;
// authenticated callers get the placeholder the clients expect.
func (h *Handler) Sync(c *gin.Context) {
	if _, ok := session.FromContext(c.Request.Context()); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Google Calendar sync coming soon",
	})
}
