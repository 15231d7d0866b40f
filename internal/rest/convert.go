package rest

import "github.com/daniilsolovey/blog-portal/internal/blog"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewUser(u blog.User) User {
	return User{Username: u.Username}
}

func NewCategory(c blog.Category) Category {
	return Category{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Slug:        c.Slug,
	}
}

func NewLocation(l blog.Location) Location {
	return Location{
		ID:   l.ID,
		Name: l.Name,
	}
}

func NewPost(p blog.Post) Post {
	post := Post{
		ID:           p.ID,
		Title:        p.Title,
		Text:         p.Text,
		PubDate:      p.PubDate,
		Author:       p.AuthorUsername,
		IsPublished:  p.IsPublished,
		Status:       string(p.Status),
		ImageURL:     p.ImageURL,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.Category != nil {
		category := NewCategory(*p.Category)
		post.Category = &category
	}

	if p.Location != nil {
		location := NewLocation(*p.Location)
		post.Location = &location
	}

	return post
}

func NewComment(c blog.Comment) Comment {
	return Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    c.AuthorUsername,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		EditedAt:  c.EditedAt,
	}
}

func NewFeed(f *blog.Feed) FeedResponse {
	response := FeedResponse{
		Posts: Map(f.Posts, NewPost),
		PageInfo: PageInfo{
			Page:       f.PageInfo.Page,
			PageSize:   f.PageInfo.PageSize,
			TotalItems: f.PageInfo.TotalItems,
			TotalPages: f.PageInfo.TotalPages,
		},
	}

	if f.Category != nil {
		category := NewCategory(*f.Category)
		response.Category = &category
	}

	if f.Profile != nil {
		profile := NewUser(*f.Profile)
		response.Profile = &profile
	}

	return response
}
