package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rent-server/auth"
	"rent-server/confs"
	"rent-server/entities"
	"rent-server/handlers"
	httpHandler "rent-server/handlers/http"
	"rent-server/repositories"
	"rent-server/services"
	"rent-server/usecases"
	"rent-server/ws"
)

type Server struct {
	app       *gin.Engine
	addr      string
	stores    repositories.Source
	global    func() *repositories.Store
	settings  *confs.Settings
	policy    repositories.BackendPolicy
	processor *services.AlertProcessor
}

// globalUsers keeps accounts in whatever store is currently global, so a
// backend switch also moves where logins are read from.
type globalUsers struct {
	global func() *repositories.Store
}

func (u globalUsers) Create(ctx context.Context, user *entities.User) error {
	return u.global().Users.Create(ctx, user)
}

func (u globalUsers) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return u.global().Users.GetByUsername(ctx, username)
}

// NewServer wires every route. global returns the process-wide store, which
// holds user accounts.
func NewServer(cfg *confs.Config, stores repositories.Source, global func() *repositories.Store, settings *confs.Settings) *Server {
	s := &Server{
		app:      gin.New(),
		addr:     cfg.HTTPAddr,
		stores:   stores,
		global:   global,
		settings: settings,
		policy:   repositories.BackendPolicy{Hosts: cfg.UserBackendHosts},
	}
	s.app.Use(gin.Recovery(), requestLogger())
	s.routes(cfg.AlertInterval)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

func (s *Server) routes(alertInterval time.Duration) {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
			"mock":   s.global().Mock,
		})
	})

	authService := auth.NewService(globalUsers{global: s.global})
	s.app.Use(authService.Middleware())

	// Use case, then the alert feed that listens to it
	rental := usecases.NewRentalUseCase(s.stores, nil)
	manager := ws.NewManager()
	s.processor = services.NewAlertProcessor(rental.Notifications, manager, alertInterval)
	rental.SetNotifier(s.processor)

	loginHandler := httpHandler.NewLoginHandler(authService)
	tenantHandler := httpHandler.NewTenantHandler(rental)
	propertyHandler := httpHandler.NewPropertyHandler(rental)
	expenseHandler := httpHandler.NewExpenseHandler(rental)
	utilityHandler := httpHandler.NewUtilityAccountHandler(rental)
	dashboardHandler := httpHandler.NewDashboardHandler(rental)
	wsHandler := handlers.NewWSHandler(manager, authService, s.processor)
	storeHandler := handlers.NewStoreHandler(s.stores, s.settings, s.policy)

	api := s.app.Group("/api/v1")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", loginHandler.Register)
			authRoutes.POST("/login", loginHandler.Login)
			authRoutes.POST("/logout", loginHandler.Logout)
		}

		tenants := api.Group("/tenants")
		{
			tenants.GET("", tenantHandler.GetAllTenants)
			tenants.POST("", tenantHandler.CreateTenant)
			tenants.GET("/:id", tenantHandler.GetTenant)
			tenants.PUT("/:id", tenantHandler.UpdateTenant)
			tenants.DELETE("/:id", tenantHandler.DeleteTenant)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.GetAllProperties)
			properties.POST("", propertyHandler.CreateProperty)
			properties.PUT("/:id", propertyHandler.UpdateProperty)
			properties.DELETE("/:id", propertyHandler.DeleteProperty)
			properties.GET("/:id/last-cleaning", propertyHandler.GetLastCleaning)
			properties.POST("/:id/rooms", propertyHandler.AddRoom)
			properties.PUT("/:id/rooms/:room_id", propertyHandler.UpdateRoom)
			properties.DELETE("/:id/rooms/:room_id", propertyHandler.DeleteRoom)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", expenseHandler.GetAllExpenses)
			expenses.POST("", expenseHandler.CreateExpense)
			expenses.PUT("/:id", expenseHandler.UpdateExpense)
			expenses.DELETE("/:id", expenseHandler.DeleteExpense)
		}

		finance := api.Group("/finance")
		{
			finance.GET("/summary", expenseHandler.GetFinanceSummary)
			finance.GET("/months", expenseHandler.GetFinanceMonths)
		}

		utilities := api.Group("/utility-accounts")
		{
			utilities.GET("", utilityHandler.GetAllUtilityAccounts)
			utilities.POST("", utilityHandler.CreateUtilityAccount)
			utilities.PUT("/:id", utilityHandler.UpdateUtilityAccount)
			utilities.DELETE("/:id", utilityHandler.DeleteUtilityAccount)
			utilities.GET("/:id/status", utilityHandler.GetUtilityStatus)
		}

		api.GET("/activities", dashboardHandler.GetActivities)
		api.POST("/activities", dashboardHandler.CreateActivity)
		api.GET("/profile", dashboardHandler.GetProfile)
		api.PUT("/profile", dashboardHandler.UpdateProfile)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/notifications", dashboardHandler.GetNotifications)
			dashboard.GET("/live", wsHandler.GetConnection)
		}

		// Backend settings and store statistics
		api.GET("/settings/backend", storeHandler.GetBackend)
		api.PUT("/settings/backend", storeHandler.SetBackend)
		api.DELETE("/settings/backend", storeHandler.ClearBackend)
		api.GET("/store/stats", storeHandler.GetStoreStats)
	}

	s.app.GET("/ws", wsHandler.HandleDashboardWS)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.processor.Start()
	defer s.processor.Stop()

	srv := &http.Server{Addr: s.addr, Handler: s.app}
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", s.addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logrus.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}
