package handler

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ameen01/Bad-Trade/internal/middleware"
	"github.com/ameen01/Bad-Trade/internal/repository"
	"github.com/ameen01/Bad-Trade/internal/service"
	"github.com/ameen01/Bad-Trade/internal/session"
	"github.com/ameen01/Bad-Trade/internal/utils"
	"github.com/ameen01/Bad-Trade/web"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthCheck reports whether the storage backend is reachable
type HealthCheck func(ctx context.Context) error

// ParseTemplates parses the embedded page templates
func ParseTemplates() (*template.Template, error) {
	t, err := template.New("").
		Funcs(template.FuncMap{"formatPrice": repository.FormatPrice}).
		ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

// NewRouter wires middlewares, handlers and routes into a gin engine
func NewRouter(
	manager *session.Manager,
	jwtUtil *utils.JWTUtil,
	authService service.AuthService,
	dashboardService service.DashboardService,
	health HealthCheck,
) (*gin.Engine, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)

	pages := NewPages(dashboardService)
	authHandler := NewAuthHandler(authService, pages)
	dashboardHandler := NewDashboardHandler(dashboardService, pages)

	app := router.Group("/")
	app.Use(middleware.SessionMiddleware(manager, jwtUtil))
	authHandler.RegisterAuthRoutes(app)
	dashboardHandler.RegisterDashboardRoutes(app, middleware.LoginMiddleware(), middleware.AdminMiddleware())

	router.GET("/health", func(c *gin.Context) {
		if err := health(c.Request.Context()); err != nil {
			logrus.WithError(err).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "storage": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": "healthy"})
	})

	return router, nil
}
