package dashboard

import (
	"net/http"

	"thakirni-app/internal/dashboard"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Router *dashboard.Router
}

// GetDashboard resolves which dashboard view the caller should see. The
// resolution starts from the skeleton state and the handler waits for the
// tier lookup; clients polling mid-lookup (see the "wait=false" query) get
// the skeleton back.
func (h *Handler) GetDashboard(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res := h.Router.Resolve(c.Request.Context(), sess.UserID)

	if c.Query("wait") == "false" {
		c.JSON(http.StatusOK, gin.H{"view": res.View()})
		return
	}

	select {
	case <-res.Done():
	case <-c.Request.Context().Done():
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Request cancelled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"view": res.View()})
}
