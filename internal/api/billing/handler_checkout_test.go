package billing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thakirni-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func TestResolveCheckoutPlan(t *testing.T) {
	if _, err := resolveCheckoutPlan("free"); !errors.Is(err, billing.ErrFreePlanNotPurchasable) {
		t.Errorf("free plan: %v", err)
	}
	if _, err := resolveCheckoutPlan("enterprise"); !errors.Is(err, billing.ErrUnknownPlan) {
		t.Errorf("unknown plan: %v", err)
	}
	if plan, err := resolveCheckoutPlan("team"); err != nil || plan.ID != "team" {
		t.Errorf("team plan: %v, %v", plan, err)
	}
}

func TestBuildCheckoutParamsYearlyUsesYearlyPrice(t *testing.T) {
	plan, _ := billing.LookupPlan("individual")

	params := buildCheckoutParams(plan, billing.PeriodYearly, "user-1")

	if len(params.LineItems) != 1 {
		t.Fatalf("expected a single line item, got %d", len(params.LineItems))
	}
	item := params.LineItems[0].PriceData
	if *item.UnitAmount != plan.PriceYearly {
		t.Errorf("unit amount = %d, want yearly %d", *item.UnitAmount, plan.PriceYearly)
	}
	if *item.Recurring.Interval != "year" {
		t.Errorf("interval = %q, want year", *item.Recurring.Interval)
	}
}

func TestBuildCheckoutParamsMonthly(t *testing.T) {
	plan, _ := billing.LookupPlan("individual")

	params := buildCheckoutParams(plan, billing.PeriodMonthly, "")

	item := params.LineItems[0].PriceData
	if *item.UnitAmount != plan.PriceMonthly {
		t.Errorf("unit amount = %d, want monthly %d", *item.UnitAmount, plan.PriceMonthly)
	}
	if *item.Recurring.Interval != "month" {
		t.Errorf("interval = %q, want month", *item.Recurring.Interval)
	}
	if params.Metadata["user_id"] != "" {
		t.Errorf("anonymous checkout must carry an empty user_id, got %q", params.Metadata["user_id"])
	}
	if params.Metadata["billing_period"] != "monthly" {
		t.Errorf("metadata billing_period = %q", params.Metadata["billing_period"])
	}
}

func TestBuildCheckoutParamsEmbeddedMode(t *testing.T) {
	plan, _ := billing.LookupPlan("team")

	params := buildCheckoutParams(plan, billing.PeriodMonthly, "user-1")

	if *params.Mode != "subscription" {
		t.Errorf("mode = %q", *params.Mode)
	}
	if *params.UIMode != "embedded" {
		t.Errorf("ui mode = %q, want embedded", *params.UIMode)
	}
	if *params.RedirectOnCompletion != "never" {
		t.Errorf("redirect_on_completion = %q, want never", *params.RedirectOnCompletion)
	}
	if params.SubscriptionData.Metadata["plan_id"] != "team" {
		t.Errorf("subscription metadata plan_id = %q", params.SubscriptionData.Metadata["plan_id"])
	}
}

func newCheckoutRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Log: logrus.New()}
	r := gin.New()
	r.POST("/api/billing/checkout", h.StartCheckout)
	return r
}

func postCheckout(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/billing/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStartCheckoutRejectsFreePlanBeforeGateway(t *testing.T) {
	// No Stripe key configured: if the handler reached the gateway path it
	// would answer 500, so a 400 here proves the free plan is rejected
	// before any gateway concern.
	t.Setenv("STRIPE_SECRET_KEY", "")
	r := newCheckoutRouter()

	resp := postCheckout(t, r, `{"plan_id":"free","billing_period":"yearly"}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("free plan checkout: got %d, want 400", resp.Code)
	}
}

func TestStartCheckoutRejectsUnknownPlan(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	r := newCheckoutRouter()

	resp := postCheckout(t, r, `{"plan_id":"enterprise"}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("unknown plan checkout: got %d, want 400", resp.Code)
	}
}

func TestStartCheckoutRequiresPlanID(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	r := newCheckoutRouter()

	resp := postCheckout(t, r, `{}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("missing plan_id: got %d, want 400", resp.Code)
	}
}

func TestStartCheckoutMissingStripeKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	r := newCheckoutRouter()

	resp := postCheckout(t, r, `{"plan_id":"individual"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Errorf("missing stripe key: got %d, want 500", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "sk_") {
		t.Error("response must never echo a key")
	}
}
