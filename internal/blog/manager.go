package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daniilsolovey/blog-portal/internal/db"
)

// Manager composes the visibility and authorization policies with the
// repository: it resolves feed scopes, paginates, attaches comment
// counts, and guards every mutation.
type Manager struct {
	db       *db.Repository
	pageSize int
}

func NewManager(repo *db.Repository, pageSize int) *Manager {
	return &Manager{
		db:       repo,
		pageSize: pageSize,
	}
}

func (m *Manager) PageSize() int {
	return m.pageSize
}

// Feed returns one page of the listing selected by scope. Out-of-range
// page numbers clamp to the nearest valid page, so a feed that has any
// items never returns an empty page.
func (m *Manager) Feed(ctx context.Context, scope Scope, viewer *Viewer, page int) (*Feed, error) {
	now := time.Now()
	feed := &Feed{}
	filter := db.PostFilter{PublicOnly: true, Now: now}

	switch scope.kind {
	case scopeGlobal:
		// public predicate only; even the viewer's own hidden or
		// future posts stay out of the global index

	case scopeCategory:
		category, err := m.db.CategoryBySlug(ctx, scope.categorySlug)
		if err != nil {
			return nil, fmt.Errorf("db get category by slug: %w", err)
		}
		// an unpublished category is reported exactly like a missing one
		if category == nil || !category.IsPublished {
			return nil, ErrNotFound
		}
		domainCategory := NewCategory(category)
		feed.Category = &domainCategory
		filter.CategoryID = &category.ID

	case scopeProfile:
		user, err := m.db.UserByUsername(ctx, scope.username)
		if err != nil {
			return nil, fmt.Errorf("db get user by username: %w", err)
		}
		if user == nil {
			return nil, ErrNotFound
		}
		domainUser := NewUser(user)
		feed.Profile = &domainUser
		filter.AuthorID = &user.ID
		if viewer != nil && viewer.ID == user.ID {
			// self-view bypasses visibility filtering entirely
			filter.PublicOnly = false
		}
	}

	total, err := m.db.PostsCount(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("db get posts count: %w", err)
	}

	totalPages := (total + m.pageSize - 1) / m.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	rows, err := m.db.Posts(ctx, filter, page, m.pageSize)
	if err != nil {
		return nil, fmt.Errorf("db get posts: %w", err)
	}

	feed.Posts = NewPosts(rows, now)
	if err := m.fillCommentCounts(ctx, feed.Posts); err != nil {
		return nil, err
	}

	feed.PageInfo = PageInfo{
		Page:       page,
		PageSize:   m.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return feed, nil
}

func (m *Manager) fillCommentCounts(ctx context.Context, posts []Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	counts, err := m.db.CommentCounts(ctx, ids)
	if err != nil {
		return fmt.Errorf("db count comments: %w", err)
	}

	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}

	return nil
}

// PostByID returns the post with its visible comments, or ErrNotFound
// when the post is absent or not visible to the viewer. A scheduled
// post requested by anyone but its author is a not-found outcome.
func (m *Manager) PostByID(ctx context.Context, postID int, viewer *Viewer) (*PostDetail, error) {
	now := time.Now()

	row, err := m.db.PostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get post by id: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	post := NewPost(row, now)
	if !PostVisibleTo(viewer, &post, now) {
		return nil, ErrNotFound
	}

	commentRows, err := m.db.CommentsByPostID(ctx, postID, true)
	if err != nil {
		return nil, fmt.Errorf("db get comments: %w", err)
	}

	comments := NewComments(commentRows)
	post.CommentCount = len(comments)

	return &PostDetail{
		Post:     post,
		Comments: comments,
	}, nil
}

// CreatePost stores a new post for the author. Title, text and pub_date
// are required; status is derived from pub_date, never accepted from
// the caller.
func (m *Manager) CreatePost(ctx context.Context, author *Viewer, in PostInput) (*Post, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateRequired(in); err != nil {
		return nil, err
	}
	if err := m.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	now := time.Now()
	isPublished := true
	if in.IsPublished != nil {
		isPublished = *in.IsPublished
	}

	row := &db.Post{
		Title:       strings.TrimSpace(*in.Title),
		Text:        *in.Text,
		PubDate:     *in.PubDate,
		AuthorID:    author.ID,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
		IsPublished: isPublished,
		Status:      string(DeriveStatus(*in.PubDate, now)),
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.db.CreatePost(ctx, row); err != nil {
		return nil, fmt.Errorf("db create post: %w", err)
	}

	created, err := m.db.PostByID(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("db reload post: %w", err)
	}

	post := NewPost(created, now)
	return &post, nil
}

// UpdatePost applies the set fields of in to the post. Only the author
// may update; the status projection is recomputed against the new
// pub_date, so an update can move a post between published and
// scheduled in either direction.
func (m *Manager) UpdatePost(ctx context.Context, postID int, viewer *Viewer, in PostInput) (*Post, error) {
	row, err := m.ownedPost(ctx, postID, viewer)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		row.Title = title
	}
	if in.Text != nil {
		if *in.Text == "" {
			return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
		}
		row.Text = *in.Text
	}
	if in.PubDate != nil {
		row.PubDate = *in.PubDate
	}
	if in.CategoryID != nil || in.LocationID != nil {
		if err := m.checkReferences(ctx, in); err != nil {
			return nil, err
		}
	}
	if in.CategoryID != nil {
		row.CategoryID = in.CategoryID
	}
	if in.LocationID != nil {
		row.LocationID = in.LocationID
	}
	if in.IsPublished != nil {
		row.IsPublished = *in.IsPublished
	}
	if in.ImageURL != nil {
		row.ImageURL = in.ImageURL
	}

	now := time.Now()
	row.Status = string(DeriveStatus(row.PubDate, now))
	row.UpdatedAt = now

	if err := m.db.UpdatePost(ctx, row); err != nil {
		return nil, fmt.Errorf("db update post: %w", err)
	}

	updated, err := m.db.PostByID(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("db reload post: %w", err)
	}

	post := NewPost(updated, now)
	return &post, nil
}

// DeletePost removes the post after an explicit confirmation. Without
// confirmation it returns the post unchanged together with
// ErrConfirmRequired so the caller can re-present the prompt.
func (m *Manager) DeletePost(ctx context.Context, postID int, viewer *Viewer, confirmed bool) (*Post, error) {
	row, err := m.ownedPost(ctx, postID, viewer)
	if err != nil {
		return nil, err
	}

	post := NewPost(row, time.Now())
	if !confirmed {
		return &post, ErrConfirmRequired
	}

	if err := m.db.DeletePost(ctx, postID); err != nil {
		return nil, fmt.Errorf("db delete post: %w", err)
	}

	return &post, nil
}

// ownedPost loads the post and checks the viewer may mutate it.
func (m *Manager) ownedPost(ctx context.Context, postID int, viewer *Viewer) (*db.Post, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	row, err := m.db.PostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get post by id: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	post := NewPost(row, time.Now())
	if !CanModifyPost(viewer, &post) {
		return nil, ErrPermissionDenied
	}

	return row, nil
}

// AddComment attaches a comment to a post the author can see.
func (m *Manager) AddComment(ctx context.Context, postID int, author *Viewer, text string) (*Comment, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}

	now := time.Now()
	row, err := m.db.PostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get post by id: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	post := NewPost(row, now)
	if !PostVisibleTo(author, &post, now) {
		return nil, ErrNotFound
	}

	comment := &db.Comment{
		PostID:      postID,
		AuthorID:    author.ID,
		Text:        text,
		IsPublished: true,
		CreatedAt:   now,
	}
	if err := m.db.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("db create comment: %w", err)
	}

	created, err := m.db.CommentByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("db reload comment: %w", err)
	}

	result := NewComment(created)
	return &result, nil
}

// UpdateComment replaces the comment text and stamps edited_at. Only
// the comment's author may edit.
func (m *Manager) UpdateComment(ctx context.Context, postID, commentID int, viewer *Viewer, text string) (*Comment, error) {
	row, err := m.ownedComment(ctx, postID, commentID, viewer)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}

	now := time.Now()
	row.Text = text
	row.EditedAt = &now

	if err := m.db.UpdateComment(ctx, row); err != nil {
		return nil, fmt.Errorf("db update comment: %w", err)
	}

	result := NewComment(row)
	return &result, nil
}

func (m *Manager) DeleteComment(ctx context.Context, postID, commentID int, viewer *Viewer) error {
	row, err := m.ownedComment(ctx, postID, commentID, viewer)
	if err != nil {
		return err
	}

	if err := m.db.DeleteComment(ctx, row.ID); err != nil {
		return fmt.Errorf("db delete comment: %w", err)
	}

	return nil
}

func (m *Manager) ownedComment(ctx context.Context, postID, commentID int, viewer *Viewer) (*db.Comment, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	row, err := m.db.CommentByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("db get comment by id: %w", err)
	}
	if row == nil || row.PostID != postID {
		return nil, ErrNotFound
	}

	comment := NewComment(row)
	if !CanModifyComment(viewer, &comment) {
		return nil, ErrPermissionDenied
	}

	return row, nil
}

func (m *Manager) Categories(ctx context.Context) ([]Category, error) {
	list, err := m.db.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	return NewCategories(list), nil
}

func (m *Manager) Locations(ctx context.Context) ([]Location, error) {
	list, err := m.db.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get locations: %w", err)
	}

	return NewLocations(list), nil
}

func validateRequired(in PostInput) error {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Text == nil || *in.Text == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if in.PubDate == nil {
		return &ValidationError{Field: "pub_date", Reason: "is required"}
	}
	return nil
}

func (m *Manager) checkReferences(ctx context.Context, in PostInput) error {
	if in.CategoryID != nil {
		category, err := m.db.CategoryByID(ctx, *in.CategoryID)
		if err != nil {
			return fmt.Errorf("db get category by id: %w", err)
		}
		if category == nil {
			return &ValidationError{Field: "category_id", Reason: "unknown category"}
		}
	}
	if in.LocationID != nil {
		location, err := m.db.LocationByID(ctx, *in.LocationID)
		if err != nil {
			return fmt.Errorf("db get location by id: %w", err)
		}
		if location == nil {
			return &ValidationError{Field: "location_id", Reason: "unknown location"}
		}
	}
	return nil
}
