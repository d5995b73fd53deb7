package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/taskops/admin-console/internal/api/handler"
	"github.com/taskops/admin-console/internal/api/middleware"
	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(sessions *session.Manager, remote handler.RemotePinger, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(sessions)
	consoleHandler := handler.NewConsoleHandler()
	accountHandler := handler.NewAccountHandler()
	workItemHandler := handler.NewWorkItemHandler()

	// --- Session routes (no established session required) ---
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/register", sessionHandler.Register)

	// --- Probes and metrics ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(remote).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Console routes (session required) ---
	authed := e.Group("", middleware.Session(sessions))
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authed.POST("/session/logout", sessionHandler.Logout)

	authed.GET("/console", consoleHandler.State)
	authed.PUT("/console/tab", consoleHandler.SelectTab)
	authed.GET("/console/dashboard", consoleHandler.Dashboard)
	authed.GET("/console/notifications", consoleHandler.Notifications)

	// Accounts: visible to every role, mutable by admins only.
	authed.GET("/console/accounts", accountHandler.List)
	authed.POST("/console/accounts/refresh", accountHandler.Refresh)
	authed.POST("/console/accounts", accountHandler.Create, adminOnly)
	authed.PUT("/console/accounts/:id", accountHandler.Update, adminOnly)
	authed.DELETE("/console/accounts/:id", accountHandler.Delete, adminOnly)
	authed.GET("/console/accounts/form", accountHandler.Form, adminOnly)
	authed.POST("/console/accounts/form/create", accountHandler.OpenCreateForm, adminOnly)
	authed.POST("/console/accounts/form/edit/:id", accountHandler.OpenEditForm, adminOnly)
	authed.PUT("/console/accounts/form", accountHandler.SetDraft, adminOnly)
	authed.DELETE("/console/accounts/form", accountHandler.CancelForm, adminOnly)

	// Work items: every role may create, edit and delete.
	authed.GET("/console/tasks", workItemHandler.List)
	authed.POST("/console/tasks/refresh", workItemHandler.Refresh)
	authed.POST("/console/tasks", workItemHandler.Create)
	authed.PUT("/console/tasks/:id", workItemHandler.Update)
	authed.DELETE("/console/tasks/:id", workItemHandler.Delete)
	authed.GET("/console/tasks/form", workItemHandler.Form)
	authed.POST("/console/tasks/form/create", workItemHandler.OpenCreateForm)
	authed.POST("/console/tasks/form/edit/:id", workItemHandler.OpenEditForm)
	authed.PUT("/console/tasks/form", workItemHandler.SetDraft)
	authed.DELETE("/console/tasks/form", workItemHandler.CancelForm)

	return e
}
