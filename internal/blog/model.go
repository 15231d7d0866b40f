package blog

import (
	"time"

	"github.com/google/uuid"
)

// Viewer is the identity a request acts on behalf of. A nil *Viewer is
// an anonymous reader; the identity is always passed explicitly, never
// carried in ambient state.
type Viewer struct {
	ID       uuid.UUID
	Username string
}

type User struct {
	ID       uuid.UUID
	Username string
}

type Category struct {
	ID          int
	Title       string
	Description string
	Slug        string
	IsPublished bool
	CreatedAt   time.Time
}

type Location struct {
	ID          int
	Name        string
	IsPublished bool
	CreatedAt   time.Time
}

type Post struct {
	ID             int
	Title          string
	Text           string
	PubDate        time.Time
	AuthorID       uuid.UUID
	AuthorUsername string
	Category       *Category
	Location       *Location
	IsPublished    bool
	Status         Status
	ImageURL       *string
	CommentCount   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Comment struct {
	ID             int
	PostID         int
	AuthorID       uuid.UUID
	AuthorUsername string
	Text           string
	IsPublished    bool
	CreatedAt      time.Time
	EditedAt       *time.Time
}

// PostDetail is a post together with its visible comments.
type PostDetail struct {
	Post     Post
	Comments []Comment
}

type PageInfo struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Feed is one page of a listing. Category and Profile are set for the
// category and profile scopes respectively.
type Feed struct {
	Posts    []Post
	Category *Category
	Profile  *User
	PageInfo PageInfo
}

type scopeKind int

const (
	scopeGlobal scopeKind = iota
	scopeCategory
	scopeProfile
)

// Scope selects which feed is listed: the global index, one category's
// posts, or one author's posts.
type Scope struct {
	kind         scopeKind
	categorySlug string
	username     string
}

func GlobalScope() Scope {
	return Scope{kind: scopeGlobal}
}

func CategoryScope(slug string) Scope {
	return Scope{kind: scopeCategory, categorySlug: slug}
}

func ProfileScope(username string) Scope {
	return Scope{kind: scopeProfile, username: username}
}

// PostInput carries post fields for create and update. Nil pointers on
// update mean "leave unchanged"; on create, IsPublished defaults to
// true and Category/Location stay unset.
type PostInput struct {
	Title       *string
	Text        *string
	PubDate     *time.Time
	CategoryID  *int
	LocationID  *int
	IsPublished *bool
	ImageURL    *string
}
