package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

type FeedRequest struct {
	Page int `query:"page"`
}

type BlogHandler struct {
	uc   *blog.Manager
	log  *slog.Logger
	auth AuthConfig
}

func NewBlogHandler(uc *blog.Manager, log *slog.Logger, auth AuthConfig) *BlogHandler {
	if auth.LoginURL == "" {
		auth.LoginURL = "/login"
	}
	return &BlogHandler{
		uc:   uc,
		log:  log,
		auth: auth,
	}
}

func postDetailPath(postID int) string {
	return fmt.Sprintf("/api/v1/posts/%d", postID)
}

func (h *BlogHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// respondError maps domain failures to the boundary outcomes: not-found
// pages, a redirect to the owning post for permission failures, form
// re-presentation for validation failures, and a login pointer for
// unauthenticated calls. postID names the owning post for the redirect.
func (h *BlogHandler) respondError(c echo.Context, err error, postID int) error {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, blog.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
			"login": h.auth.LoginURL,
		})
	case errors.Is(err, blog.ErrPermissionDenied):
		return c.Redirect(http.StatusSeeOther, postDetailPath(postID))
	case errors.Is(err, blog.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
}

// Posts handles GET /api/v1/posts: the global feed. The viewer's own
// hidden and future posts are not included here; those live on the
// profile feed.
func (h *BlogHandler) Posts(c echo.Context) error {
	return h.feed(c, blog.GlobalScope())
}

// CategoryPosts handles GET /api/v1/category/:slug/posts. An
// unpublished category behaves exactly like a missing one.
func (h *BlogHandler) CategoryPosts(c echo.Context) error {
	return h.feed(c, blog.CategoryScope(c.Param("slug")))
}

// ProfilePosts handles GET /api/v1/profile/:username/posts. Authors
// viewing their own profile see every post, drafts and scheduled ones
// included.
func (h *BlogHandler) ProfilePosts(c echo.Context) error {
	return h.feed(c, blog.ProfileScope(c.Param("username")))
}

func (h *BlogHandler) feed(c echo.Context, scope blog.Scope) error {
	var req FeedRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}
	if req.Page < 1 {
		req.Page = 1
	}

	feed, err := h.uc.Feed(c.Request().Context(), scope, viewerFrom(c), req.Page)
	if err != nil {
		return h.respondError(c, err, 0)
	}

	return c.JSON(http.StatusOK, NewFeed(feed))
}

// PostByID handles GET /api/v1/posts/:id. A post the viewer may not see
// is a plain 404; existence is not revealed.
func (h *BlogHandler) PostByID(c echo.Context) error {
	postID, err := h.pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	detail, err := h.uc.PostByID(c.Request().Context(), postID, viewerFrom(c))
	if err != nil {
		return h.respondError(c, err, postID)
	}

	return c.JSON(http.StatusOK, PostDetailResponse{
		Post:     NewPost(detail.Post),
		Comments: Map(detail.Comments, NewComment),
	})
}

// CreatePost handles POST /api/v1/posts.
func (h *BlogHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	input := blog.PostInput{
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		IsPublished: req.IsPublished,
		ImageURL:    req.ImageURL,
	}
	input.Title = &req.Title
	input.Text = &req.Text
	if !req.PubDate.IsZero() {
		input.PubDate = &req.PubDate
	}

	post, err := h.uc.CreatePost(c.Request().Context(), viewerFrom(c), input)
	if err != nil {
		return h.respondError(c, err, 0)
	}

	return c.JSON(http.StatusCreated, NewPost(*post))
}

// UpdatePost handles PATCH /api/v1/posts/:id. Absent fields stay
// unchanged; status is recomputed from the resulting pub_date.
func (h *BlogHandler) UpdatePost(c echo.Context) error {
	postID, err := h.pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	post, err := h.uc.UpdatePost(c.Request().Context(), postID, viewerFrom(c), blog.PostInput{
		Title:       req.Title,
		Text:        req.Text,
		PubDate:     req.PubDate,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		IsPublished: req.IsPublished,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return h.respondError(c, err, postID)
	}

	return c.JSON(http.StatusOK, NewPost(*post))
}

// DeletePost handles DELETE /api/v1/posts/:id?confirm=true. Without the
// confirm flag the prompt is re-presented and nothing is deleted.
func (h *BlogHandler) DeletePost(c echo.Context) error {
	postID, err := h.pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	post, err := h.uc.DeletePost(c.Request().Context(), postID, viewerFrom(c), confirmed)
	if errors.Is(err, blog.ErrConfirmRequired) {
		return c.JSON(http.StatusBadRequest, DeletePromptResponse{
			Error:   "explicit confirmation required",
			Confirm: false,
			Post:    NewPost(*post),
		})
	}
	if err != nil {
		return h.respondError(c, err, postID)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddComment handles POST /api/v1/posts/:id/comments.
func (h *BlogHandler) AddComment(c echo.Context) error {
	postID, err := h.pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.uc.AddComment(c.Request().Context(), postID, viewerFrom(c), req.Text)
	if err != nil {
		return h.respondError(c, err, postID)
	}

	return c.JSON(http.StatusCreated, NewComment(*comment))
}

// UpdateComment handles PATCH /api/v1/posts/:id/comments/:commentId.
func (h *BlogHandler) UpdateComment(c echo.Context) error {
	postID, err := h.pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}
	commentID, err := h.pathID(c, "commentId")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid comment id")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.uc.UpdateComment(c.Request().Context(), postID, commentID, viewerFrom(c), req.Text)
	if err != nil {
		return h.respondError(c, err, postID)
	}

	return c.JSON(http.StatusOK, NewComment(*comment))
}

// DeleteComment handles DELETE /api/v1/posts/:id/comments/:commentId.
func (h *BlogHandler) DeleteComment(c echo.Context) error {
	postID, err := h.pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}
	commentID, err := h.pathID(c, "commentId")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid comment id")
	}

	if err := h.uc.DeleteComment(c.Request().Context(), postID, commentID, viewerFrom(c)); err != nil {
		return h.respondError(c, err, postID)
	}

	return c.NoContent(http.StatusNoContent)
}

// Categories handles GET /api/v1/categories: published categories for
// index navigation.
func (h *BlogHandler) Categories(c echo.Context) error {
	categories, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return h.respondError(c, err, 0)
	}

	return c.JSON(http.StatusOK, Map(categories, NewCategory))
}

// Locations handles GET /api/v1/locations: published locations offered
// as post attributes.
func (h *BlogHandler) Locations(c echo.Context) error {
	locations, err := h.uc.Locations(c.Request().Context())
	if err != nil {
		return h.respondError(c, err, 0)
	}

	return c.JSON(http.StatusOK, Map(locations, NewLocation))
}

func (h *BlogHandler) pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}
