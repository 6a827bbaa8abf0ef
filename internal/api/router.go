package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plotbuild/marketplace/internal/api/handler"
	"github.com/plotbuild/marketplace/internal/api/middleware"
	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// Services bundles the injected use-case implementations the router exposes.
type Services struct {
	Auth    ports.AuthService
	Plots   ports.PlotService
	Quotes  ports.QuoteService
	Users   ports.UserService
	Contact ports.ContactService
	Advisor ports.AdvisorService
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Route groups and their access rules:
//
//	/api/auth      register/login/refresh public, logout/me authenticated
//	/api/plots     authenticated, customer only
//	/api/quotes    authenticated, role-split per handler
//	/api/users     profile authenticated, builder directory public
//	/api/contact   public
//	/api/advisor   authenticated
func NewRouter(svc Services, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	auth := middleware.Auth(jwtSecret)
	customerOnly := middleware.RBAC(domain.RoleCustomer)

	authHandler := handler.NewAuthHandler(svc.Auth)
	plotHandler := handler.NewPlotHandler(svc.Plots)
	quoteHandler := handler.NewQuoteHandler(svc.Quotes)
	userHandler := handler.NewUserHandler(svc.Users)
	contactHandler := handler.NewContactHandler(svc.Contact)
	advisorHandler := handler.NewAdvisorHandler(svc.Advisor)

	apiGroup := e.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout, auth)
	authGroup.GET("/me", authHandler.Me, auth)

	plotGroup := apiGroup.Group("/plots", auth, customerOnly)
	plotGroup.POST("", plotHandler.Create)
	plotGroup.GET("", plotHandler.List)
	plotGroup.GET("/:id", plotHandler.Get)
	plotGroup.PUT("/:id", plotHandler.Update)
	plotGroup.DELETE("/:id", plotHandler.Delete)

	quoteGroup := apiGroup.Group("/quotes", auth)
	quoteGroup.POST("/requests", quoteHandler.CreateRequest, customerOnly)
	quoteGroup.GET("/requests", quoteHandler.ListRequests)
	quoteGroup.GET("/requests/:id", quoteHandler.GetRequest)
	quoteGroup.PUT("/requests/:id/cancel", quoteHandler.CancelRequest, customerOnly)
	quoteGroup.POST("", quoteHandler.SubmitQuote, middleware.RBAC(domain.RoleBuilder))
	quoteGroup.GET("", quoteHandler.ListQuotes)
	quoteGroup.PUT("/:id/accept", quoteHandler.AcceptQuote, customerOnly)
	quoteGroup.PUT("/:id/reject", quoteHandler.RejectQuote, customerOnly)

	userGroup := apiGroup.Group("/users")
	userGroup.GET("/profile", userHandler.Profile, auth)
	userGroup.PUT("/profile", userHandler.UpdateProfile, auth)
	userGroup.GET("/builders", userHandler.ListBuilders)
	userGroup.GET("/builders/:id", userHandler.GetBuilder)

	apiGroup.POST("/contact", contactHandler.Submit)

	advisorGroup := apiGroup.Group("/advisor", auth)
	advisorGroup.POST("/budget", advisorHandler.BudgetOpinion)
	advisorGroup.GET("/history", advisorHandler.History)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
