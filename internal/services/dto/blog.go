package dto

import (
	"time"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

// BlogResponse is the public view of a blog post with its keyword
// names flattened out.
type BlogResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Content      string    `json:"content"`
	IsActive     bool      `json:"is_active"`
	AuthorID     uint      `json:"author_id"`
	AuthorName   string    `json:"author_name,omitempty"`
	Keywords     []string  `json:"keywords"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewBlogResponse maps a blog record to its public view.
func NewBlogResponse(blog *models.Blog) *BlogResponse {
	keywords := make([]string, 0, len(blog.Keywords))
	for _, kw := range blog.Keywords {
		keywords = append(keywords, kw.Name)
	}
	resp := &BlogResponse{
		ID:           blog.ID,
		Title:        blog.Title,
		ThumbnailURL: blog.ThumbnailURL,
		Content:      blog.Content,
		IsActive:     blog.IsActive,
		AuthorID:     blog.AuthorID,
		Keywords:     keywords,
		CreatedAt:    blog.CreatedAt,
		UpdatedAt:    blog.UpdatedAt,
	}
	if blog.Author != nil {
		resp.AuthorName = blog.Author.Name
	}
	return resp
}

// NewBlogResponseList maps a slice of blog records.
func NewBlogResponseList(blogs []models.Blog) []*BlogResponse {
	out := make([]*BlogResponse, 0, len(blogs))
	for i := range blogs {
		out = append(out, NewBlogResponse(&blogs[i]))
	}
	return out
}

// CreateBlogRequest creates a post, optionally attaching keywords by
// name; missing keywords are created on the fly.
type CreateBlogRequest struct {
	Title        string   `json:"title" binding:"required,max=255" validate:"required,max=255"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Content      string   `json:"content" binding:"required" validate:"required"`
	Keywords     []string `json:"keywords,omitempty"`
}

// UpdateBlogRequest partially updates a post; nil fields are left
// untouched. A non-nil Keywords slice replaces the whole set.
type UpdateBlogRequest struct {
	Title        *string   `json:"title,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	Content      *string   `json:"content,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
	Keywords     *[]string `json:"keywords,omitempty"`
}
