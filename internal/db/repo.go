package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/google/uuid"
)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// PostFilter narrows post queries. With PublicOnly set, only posts passing
// the public visibility predicate are returned: is_published, category
// absent or published, pub_date not after Now.
type PostFilter struct {
	AuthorID   *uuid.UUID
	CategoryID *int
	PublicOnly bool
	Now        time.Time
}

func (r *Repository) postsQuery(ctx context.Context, posts *[]Post, f PostFilter) *orm.Query {
	query := r.db.ModelContext(ctx, posts).
		Relation("Author").
		Relation("Category").
		Relation("Location")

	if f.AuthorID != nil {
		query = query.Where(`"t"."author_id" = ?`, *f.AuthorID)
	}

	if f.CategoryID != nil {
		query = query.Where(`"t"."category_id" = ?`, *f.CategoryID)
	}

	if f.PublicOnly {
		query = query.
			Where(`"t"."is_published" = TRUE`).
			Where(`("t"."category_id" IS NULL OR "category"."is_published" = TRUE)`).
			Where(`"t"."pub_date" <= ?`, f.Now)
	}

	return query
}

// Posts retrieves posts matching the filter, sorted by pub_date DESC with
// id DESC as the tie-breaker, with pagination.
func (r *Repository) Posts(ctx context.Context, f PostFilter, page, pageSize int) ([]Post, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf(
			"page or pageSize must be greater than 0: page=%d, pageSize=%d",
			page, pageSize,
		)
	}

	offset := (page - 1) * pageSize

	var posts []Post
	err := r.postsQuery(ctx, &posts, f).
		OrderExpr(`"t"."pub_date" DESC, "t"."id" DESC`).
		Limit(pageSize).
		Offset(offset).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	return posts, nil
}

func (r *Repository) PostsCount(ctx context.Context, f PostFilter) (int, error) {
	var posts []Post
	count, err := r.postsQuery(ctx, &posts, f).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get posts count: %w", err)
	}

	return count, nil
}

// PostByID returns the post row with its relations regardless of
// visibility; the caller decides whether the viewer may see it.
func (r *Repository) PostByID(ctx context.Context, postID int) (*Post, error) {
	post := &Post{}
	err := r.db.ModelContext(ctx, post).
		Relation("Author").
		Relation("Category").
		Relation("Location").
		Where(`"t"."id" = ?`, postID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *Repository) CreatePost(ctx context.Context, post *Post) error {
	if _, err := r.db.ModelContext(ctx, post).Insert(); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *Post) error {
	if _, err := r.db.ModelContext(ctx, post).WherePK().Update(); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// DeletePost removes the post row; its comments go with it through the
// ON DELETE CASCADE constraint.
func (r *Repository) DeletePost(ctx context.Context, postID int) error {
	_, err := r.db.ModelContext(ctx, (*Post)(nil)).
		Where(`"t"."id" = ?`, postID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// CommentCounts returns the number of published comments per post for the
// given post ids.
func (r *Repository) CommentCounts(ctx context.Context, postIDs []int) (map[int]int, error) {
	if len(postIDs) == 0 {
		return map[int]int{}, nil
	}

	var rows []struct {
		PostID int
		Count  int
	}
	_, err := r.db.QueryContext(ctx, &rows, `
		SELECT "post_id", count(*) AS "count"
		FROM "comments"
		WHERE "is_published" = TRUE AND "post_id" IN (?)
		GROUP BY "post_id"`, pg.In(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	return counts, nil
}

func (r *Repository) CommentsByPostID(ctx context.Context, postID int, publishedOnly bool) ([]Comment, error) {
	var comments []Comment
	query := r.db.ModelContext(ctx, &comments).
		Relation("Author").
		Where(`"t"."post_id" = ?`, postID)

	if publishedOnly {
		query = query.Where(`"t"."is_published" = TRUE`)
	}

	err := query.
		OrderExpr(`"t"."created_at" ASC, "t"."id" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	return comments, nil
}

func (r *Repository) CommentByID(ctx context.Context, commentID int) (*Comment, error) {
	comment := &Comment{}
	err := r.db.ModelContext(ctx, comment).
		Relation("Author").
		Where(`"t"."id" = ?`, commentID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *Comment) error {
	if _, err := r.db.ModelContext(ctx, comment).Insert(); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *Comment) error {
	if _, err := r.db.ModelContext(ctx, comment).WherePK().Update(); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, commentID int) error {
	_, err := r.db.ModelContext(ctx, (*Comment)(nil)).
		Where(`"t"."id" = ?`, commentID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// Categories returns published categories sorted by title.
func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.ModelContext(ctx, &categories).
		Where(`"is_published" = TRUE`).
		OrderExpr(`"title" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

// CategoryBySlug returns the category whether published or not; the
// caller decides how an unpublished category is surfaced.
func (r *Repository) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Where(`"slug" = ?`, slug).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return category, nil
}

func (r *Repository) CategoryByID(ctx context.Context, categoryID int) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Where(`"id" = ?`, categoryID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

// Locations returns published locations sorted by name.
func (r *Repository) Locations(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := r.db.ModelContext(ctx, &locations).
		Where(`"is_published" = TRUE`).
		OrderExpr(`"name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}

	return locations, nil
}

func (r *Repository) LocationByID(ctx context.Context, locationID int) (*Location, error) {
	location := &Location{}
	err := r.db.ModelContext(ctx, location).
		Where(`"id" = ?`, locationID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get location by id: %w", err)
	}

	return location, nil
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"username" = ?`, username).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}
