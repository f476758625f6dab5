package payments

import (
	"encoding/json"
	"net/http"
	"os"

	"thakirni-app/config"
	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/gateway/moyasar"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GatewayRecorder observes outbound gateway call outcomes.
type GatewayRecorder interface {
	RecordGatewayRequest(gateway, outcome string)
}

// Handler is the secondary payment path through Moyasar. Unlike the store
// handlers, gateway failures here are forwarded verbatim: same status code,
// gateway error body under "error".
type Handler struct {
	DB       *gorm.DB
	Client   *moyasar.Client
	Recorder GatewayRecorder
	Log      logrus.FieldLogger
}

func (h *Handler) CreatePayment(c *gin.Context) {
	var body struct {
		Amount      int64             `json:"amount"`
		Currency    string            `json:"currency"`
		Description string            `json:"description"`
		Metadata    map[string]string `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Amount == 0 || body.Currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and currency are required"})
		return
	}

	secretKey := os.Getenv("MOYASAR_SECRET_KEY")
	if secretKey == "" {
		// Fail fast before any outbound call; the key's value is never
		// echoed.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
		return
	}

	result, err := h.Client.CreatePayment(c.Request.Context(), secretKey, &moyasar.PaymentRequest{
		Amount:      body.Amount,
		Currency:    body.Currency,
		Description: body.Description,
		Metadata:    body.Metadata,
	})
	if err != nil {
		h.Log.WithError(err).Error("moyasar payment creation failed")
		if h.Recorder != nil {
			h.Recorder.RecordGatewayRequest("moyasar", "transport_error")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	if !result.OK() {
		if h.Recorder != nil {
			h.Recorder.RecordGatewayRequest("moyasar", "gateway_error")
		}
		// Forward the gateway's status code and error payload unchanged.
		var gatewayErr interface{}
		if err := json.Unmarshal(result.Body, &gatewayErr); err != nil {
			gatewayErr = string(result.Body)
		}
		c.JSON(result.StatusCode, gin.H{"error": gatewayErr})
		return
	}

	if h.Recorder != nil {
		h.Recorder.RecordGatewayRequest("moyasar", "ok")
	}

	// Anonymous payments have no account to attach the record to; the
	// gateway keeps those.
	if sess, ok := session.FromContext(c.Request.Context()); ok {
		record := paymentRecord(sess, body.Amount, body.Currency, body.Metadata, result)
		if err := h.DB.Create(&record).Error; err != nil {
			h.Log.WithError(err).WithField("payment", result.PaymentID()).Warn("payment record insert failed")
		}
	}

	checkoutURL := result.TransactionURL()
	if checkoutURL == "" {
		checkoutURL = config.APP_URL + "/payments/" + result.PaymentID()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"payment":      result.Payment,
		"checkout_url": checkoutURL,
	})
}

// paymentRecord maps an accepted gateway payment onto the local history
// record the billing endpoints serve.
func paymentRecord(sess *session.Session, amount int64, currency string, metadata map[string]string, result *moyasar.PaymentResult) billing.Payment {
	paymentID := result.PaymentID()
	status, _ := result.Payment["status"].(string)
	return billing.Payment{
		UserID:           sess.UserID,
		PlanID:           metadata["plan_id"],
		BillingPeriod:    string(billing.NormalizePeriod(metadata["billing_period"])),
		Gateway:          "moyasar",
		MoyasarPaymentID: &paymentID,
		AmountHalalas:    amount,
		Currency:         currency,
		Status:           status,
	}
}
