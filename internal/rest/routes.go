package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes builds the echo instance with all API routes, the
// health check, and request logging.
func (h *BlogHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(h.loggingMiddleware)

	e.GET("/health", h.handleHealth)

	api := e.Group("/api/v1")

	api.GET("/posts", h.Posts, h.optionalAuth)
	api.POST("/posts", h.CreatePost, h.requireAuth)
	api.GET("/posts/:id", h.PostByID, h.optionalAuth)
	api.PATCH("/posts/:id", h.UpdatePost, h.requireAuth)
	api.DELETE("/posts/:id", h.DeletePost, h.requireAuth)

	api.POST("/posts/:id/comments", h.AddComment, h.requireAuth)
	api.PATCH("/posts/:id/comments/:commentId", h.UpdateComment, h.requireAuth)
	api.DELETE("/posts/:id/comments/:commentId", h.DeleteComment, h.requireAuth)

	api.GET("/category/:slug/posts", h.CategoryPosts, h.optionalAuth)
	api.GET("/profile/:username/posts", h.ProfilePosts, h.optionalAuth)

	api.GET("/categories", h.Categories)
	api.GET("/locations", h.Locations)

	return e
}

func (h *BlogHandler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *BlogHandler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.Request().RemoteAddr,
		)

		return err
	}
}
