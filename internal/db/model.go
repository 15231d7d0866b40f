package db

import (
	"time"

	"github.com/google/uuid"
)

// User rows mirror the external identity service; this service never
// creates or mutates them.
type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID       uuid.UUID `pg:"id,pk,type:uuid"`
	Username string    `pg:"username,use_zero"`
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID          int       `pg:"id,pk"`
	Title       string    `pg:"title,use_zero"`
	Description string    `pg:"description,use_zero"`
	Slug        string    `pg:"slug,use_zero"`
	IsPublished bool      `pg:"is_published,use_zero"`
	CreatedAt   time.Time `pg:"created_at,use_zero"`
}

type Location struct {
	tableName struct{} `pg:"locations,alias:t,discard_unknown_columns"`

	ID          int       `pg:"id,pk"`
	Name        string    `pg:"name,use_zero"`
	IsPublished bool      `pg:"is_published,use_zero"`
	CreatedAt   time.Time `pg:"created_at,use_zero"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID          int       `pg:"id,pk"`
	Title       string    `pg:"title,use_zero"`
	Text        string    `pg:"text,use_zero"`
	PubDate     time.Time `pg:"pub_date,use_zero"`
	AuthorID    uuid.UUID `pg:"author_id,type:uuid,use_zero"`
	CategoryID  *int      `pg:"category_id"`
	LocationID  *int      `pg:"location_id"`
	IsPublished bool      `pg:"is_published,use_zero"`
	Status      string    `pg:"status,use_zero"`
	ImageURL    *string   `pg:"image_url"`
	CreatedAt   time.Time `pg:"created_at,use_zero"`
	UpdatedAt   time.Time `pg:"updated_at,use_zero"`

	Author   *User     `pg:"fk:author_id,rel:has-one"`
	Category *Category `pg:"fk:category_id,rel:has-one"`
	Location *Location `pg:"fk:location_id,rel:has-one"`
}

type Comment struct {
	tableName struct{} `pg:"comments,alias:t,discard_unknown_columns"`

	ID          int        `pg:"id,pk"`
	PostID      int        `pg:"post_id,use_zero"`
	AuthorID    uuid.UUID  `pg:"author_id,type:uuid,use_zero"`
	Text        string     `pg:"text,use_zero"`
	IsPublished bool       `pg:"is_published,use_zero"`
	CreatedAt   time.Time  `pg:"created_at,use_zero"`
	EditedAt    *time.Time `pg:"edited_at"`

	Author *User `pg:"fk:author_id,rel:has-one"`
}
