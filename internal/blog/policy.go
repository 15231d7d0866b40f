package blog

import "time"

// PostVisibleTo decides whether the viewer may read the post. Authors
// always see their own posts, hidden and scheduled ones included.
// Everyone else sees a post only when it is published, its category (if
// any) is published, and its pub_date has passed.
func PostVisibleTo(viewer *Viewer, post *Post, now time.Time) bool {
	if viewer != nil && viewer.ID == post.AuthorID {
		return true
	}

	if !post.IsPublished {
		return false
	}

	if post.Category != nil && !post.Category.IsPublished {
		return false
	}

	return !post.PubDate.After(now)
}

// CommentVisible does not depend on the viewer: an unpublished comment
// is hidden from everyone, its author included.
func CommentVisible(comment *Comment) bool {
	return comment.IsPublished
}

// CanModifyPost governs edit and delete uniformly.
func CanModifyPost(viewer *Viewer, post *Post) bool {
	return viewer != nil && viewer.ID == post.AuthorID
}

func CanModifyComment(viewer *Viewer, comment *Comment) bool {
	return viewer != nil && viewer.ID == comment.AuthorID
}
