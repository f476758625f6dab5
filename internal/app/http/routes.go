package routes

import (
	adminapi "thakirni-app/internal/api/admin"
	authapi "thakirni-app/internal/api/auth"
	billingapi "thakirni-app/internal/api/billing"
	dashboardapi "thakirni-app/internal/api/dashboard"
	integrationsapi "thakirni-app/internal/api/integrations"
	paymentsapi "thakirni-app/internal/api/payments"
	plansapi "thakirni-app/internal/api/plans"
	"thakirni-app/internal/api/stripewebhook"
	"thakirni-app/internal/app/factory"
	"thakirni-app/internal/app/http/middleware"
	"thakirni-app/internal/dashboard"
	"thakirni-app/internal/gateway/moyasar"
	"thakirni-app/internal/metrics"
	"thakirni-app/internal/state"
	"thakirni-app/internal/store"
	"thakirni-app/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Deps carries everything the handlers need. Constructed once in main and
// passed down explicitly; there are no package-level client singletons.
type Deps struct {
	DB       *gorm.DB
	State    *state.Container
	Registry *prometheus.Registry
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	collector := metrics.NewCollector(deps.Registry)
	invalidator := view.NewInvalidator(collector)
	mutator := store.NewMutator(deps.DB, invalidator, collector, factory.NewModuleLogger("store"))

	authHandler := &authapi.Handler{DB: deps.DB, State: deps.State, Log: factory.NewModuleLogger("auth")}
	adminHandler := &adminapi.Handler{DB: deps.DB, Log: factory.NewModuleLogger("admin")}
	plansHandler := &plansapi.Handler{DB: deps.DB, Mutator: mutator, Log: factory.NewModuleLogger("plans")}
	billingHandler := &billingapi.Handler{DB: deps.DB, Log: factory.NewModuleLogger("billing")}
	paymentsHandler := &paymentsapi.Handler{
		DB:       deps.DB,
		Client:   moyasar.NewClient(),
		Recorder: collector,
		Log:      factory.NewModuleLogger("payments"),
	}
	webhookHandler := &stripewebhook.Handler{DB: deps.DB, Log: factory.NewModuleLogger("stripewebhook")}
	integrationsHandler := &integrationsapi.Handler{}
	dashboardHandler := &dashboardapi.Handler{
		Router: dashboard.NewRouter(&dashboard.StoreLookup{DB: deps.DB}),
	}

	// 10 payment attempts a minute per client is plenty for real traffic
	paymentLimiter := middleware.NewRateLimiter(rate.Limit(10.0/60.0), 10)

	r.POST("/webhook", webhookHandler.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler(deps.Registry))

	public := r.Group("/")
	public.Use(middleware.SanitizeJSONInput())

	public.POST("/api/auth/login", authHandler.Login)
	public.GET("/api/plans/catalog", billingHandler.ListCatalog)

	// Checkout accepts anonymous purchases; the session tags the gateway
	// metadata when present.
	checkout := public.Group("/")
	checkout.Use(middleware.OptionalAuth(), paymentLimiter.Middleware())
	checkout.POST("/api/billing/checkout", billingHandler.StartCheckout)
	checkout.POST("/api/payments/moyasar", paymentsHandler.CreatePayment)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/api/auth/change-password", authHandler.ChangePassword)
	auth.DELETE("/api/auth/delete-account", authHandler.DeleteAccount)

	auth.GET("/api/plans", plansHandler.ListPlans)
	auth.POST("/api/plans", plansHandler.CreatePlan)
	auth.PUT("/api/plans/:id/status", plansHandler.UpdatePlanStatus)
	auth.PATCH("/api/plans/:id", plansHandler.UpdatePlan)
	auth.DELETE("/api/plans/:id", plansHandler.DeletePlan)

	auth.GET("/api/dashboard", dashboardHandler.GetDashboard)

	auth.POST("/api/billing/cancel", billingHandler.CancelSubscription)
	auth.GET("/api/billing/subscriptions/:id", billingHandler.GetSubscriptionStatus)
	auth.GET("/api/billing/payments", billingHandler.GetPaymentHistory)
	auth.POST("/api/billing/portal", billingHandler.CreateBillingPortal)

	auth.GET("/api/integrations/google-calendar/sync", integrationsHandler.Sync)

	// Connecting the calendar is a paid feature
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription(deps.DB))
	subscribed.GET("/api/integrations/google-calendar/connect", integrationsHandler.Connect)

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.POST("/create-user", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListAllUsers)
	admin.GET("/payments", adminHandler.ListAllPayments)
	admin.GET("/stats", adminHandler.GetStats)
}
