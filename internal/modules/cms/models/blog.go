package models

import "time"

// DefaultAuthor is used when a post is created without an author
const DefaultAuthor = "Admin"

// BlogPost represents a news/blog article
type BlogPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"type:text;not null;default:'Admin'" json:"author"`
	ImageURL  string    `gorm:"type:text" json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (BlogPost) TableName() string {
	return "blog_posts"
}

// CreateBlogPostRequest represents blog post creation request
type CreateBlogPostRequest struct {
	Title    string `json:"title" form:"title"`
	Content  string `json:"content" form:"content"`
	Author   string `json:"author" form:"author"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// UpdateBlogPostRequest holds a partial update; nil fields keep their value
type UpdateBlogPostRequest struct {
	Title    *string `json:"title,omitempty" form:"title"`
	Content  *string `json:"content,omitempty" form:"content"`
	Author   *string `json:"author,omitempty" form:"author"`
	ImageURL *string `json:"image_url,omitempty" form:"image_url"`
}
