package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

const viewerContextKey = "viewer"

// AuthConfig holds what the handlers need to recognize a viewer: the
// HMAC key the external identity service signs tokens with, and the
// login entry point unauthenticated callers are pointed at.
type AuthConfig struct {
	SigningKey []byte
	LoginURL   string
}

var errInvalidToken = errors.New("invalid access token")

// optionalAuth attaches the viewer when a valid Bearer token is
// present and lets the request through anonymously otherwise.
func (h *BlogHandler) optionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		viewer, err := h.viewerFromRequest(c.Request())
		if err == nil {
			c.Set(viewerContextKey, viewer)
		}
		return next(c)
	}
}

// requireAuth rejects requests without a valid Bearer token.
func (h *BlogHandler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		viewer, err := h.viewerFromRequest(c.Request())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "authentication required",
				"login": h.auth.LoginURL,
			})
		}
		c.Set(viewerContextKey, viewer)
		return next(c)
	}
}

func (h *BlogHandler) viewerFromRequest(r *http.Request) (*blog.Viewer, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errInvalidToken
	}

	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" {
		return nil, errInvalidToken
	}

	return h.viewerFromToken(accessToken)
}

func (h *BlogHandler) viewerFromToken(accessToken string) (*blog.Viewer, error) {
	token, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return h.auth.SigningKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errInvalidToken
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, errInvalidToken
	}

	username, _ := claims["username"].(string)

	return &blog.Viewer{ID: id, Username: username}, nil
}

// viewerFrom returns the viewer set by the auth middleware, or nil for
// anonymous requests.
func viewerFrom(c echo.Context) *blog.Viewer {
	viewer, ok := c.Get(viewerContextKey).(*blog.Viewer)
	if !ok {
		return nil
	}
	return viewer
}
