package blog

import (
	"time"

	"github.com/daniilsolovey/blog-portal/internal/db"
)

func NewUser(u *db.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
	}
}

func NewCategory(c *db.Category) Category {
	return Category{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Slug:        c.Slug,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCategories(list []db.Category) []Category {
	categories := make([]Category, len(list))
	for i := range list {
		categories[i] = NewCategory(&list[i])
	}
	return categories
}

func NewLocation(l *db.Location) Location {
	return Location{
		ID:          l.ID,
		Name:        l.Name,
		IsPublished: l.IsPublished,
		CreatedAt:   l.CreatedAt,
	}
}

func NewLocations(list []db.Location) []Location {
	locations := make([]Location, len(list))
	for i := range list {
		locations[i] = NewLocation(&list[i])
	}
	return locations
}

// NewPost converts a stored row to the domain model. Status is derived
// from pub_date against now; the stored column is ignored so a stale
// row cannot misclassify itself.
func NewPost(p *db.Post, now time.Time) Post {
	post := Post{
		ID:          p.ID,
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate,
		AuthorID:    p.AuthorID,
		IsPublished: p.IsPublished,
		Status:      DeriveStatus(p.PubDate, now),
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.Author != nil {
		post.AuthorUsername = p.Author.Username
	}

	if p.Category != nil {
		category := NewCategory(p.Category)
		post.Category = &category
	}

	if p.Location != nil {
		location := NewLocation(p.Location)
		post.Location = &location
	}

	return post
}

func NewPosts(list []db.Post, now time.Time) []Post {
	posts := make([]Post, len(list))
	for i := range list {
		posts[i] = NewPost(&list[i], now)
	}
	return posts
}

func NewComment(c *db.Comment) Comment {
	comment := Comment{
		ID:          c.ID,
		PostID:      c.PostID,
		AuthorID:    c.AuthorID,
		Text:        c.Text,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
		EditedAt:    c.EditedAt,
	}

	if c.Author != nil {
		comment.AuthorUsername = c.Author.Username
	}

	return comment
}

func NewComments(list []db.Comment) []Comment {
	comments := make([]Comment, len(list))
	for i := range list {
		comments[i] = NewComment(&list[i])
	}
	return comments
}
