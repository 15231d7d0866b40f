package rest

import "time"

type User struct {
	Username string `json:"username"`
}

type Category struct {
	ID          int    `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
}

type Location struct {
	ID   int    `json:"locationId"`
	Name string `json:"name"`
}

type Post struct {
	ID           int       `json:"postId"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	PubDate      time.Time `json:"pubDate"`
	Author       string    `json:"author"`
	Category     *Category `json:"category,omitempty"`
	Location     *Location `json:"location,omitempty"`
	IsPublished  bool      `json:"isPublished"`
	Status       string    `json:"status"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        int        `json:"commentId"`
	PostID    int        `json:"postId"`
	Author    string     `json:"author"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
}

type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

type FeedResponse struct {
	Posts    []Post    `json:"posts"`
	Category *Category `json:"category,omitempty"`
	Profile  *User     `json:"profile,omitempty"`
	PageInfo PageInfo  `json:"pageInfo"`
}

type PostDetailResponse struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

// DeletePromptResponse re-presents the delete prompt when the confirm
// flag was not set; nothing has been deleted.
type DeletePromptResponse struct {
	Error   string `json:"error"`
	Confirm bool   `json:"confirm"`
	Post    Post   `json:"post"`
}

type CreatePostRequest struct {
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	PubDate     time.Time `json:"pubDate"`
	CategoryID  *int      `json:"categoryId"`
	LocationID  *int      `json:"locationId"`
	IsPublished *bool     `json:"isPublished"`
	ImageURL    *string   `json:"imageUrl"`
}

type UpdatePostRequest struct {
	Title       *string    `json:"title"`
	Text        *string    `json:"text"`
	PubDate     *time.Time `json:"pubDate"`
	CategoryID  *int       `json:"categoryId"`
	LocationID  *int       `json:"locationId"`
	IsPublished *bool      `json:"isPublished"`
	ImageURL    *string    `json:"imageUrl"`
}

type CommentRequest struct {
	Text string `json:"text"`
}
