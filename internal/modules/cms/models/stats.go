package models

import "github.com/sinfini-marketing/sinfini-web-be/internal/core/analytics"

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	Products        int64                `json:"products"`
	BlogPosts       int64                `json:"blog_posts"`
	GalleryItems    int64                `json:"gallery_items"`
	ContactMessages int64                `json:"contact_messages"`
	ChatMessages    int64                `json:"chat_messages"`
	UnansweredChats int64                `json:"unanswered_chats"`
	ChatActivity    *analytics.ChartData `json:"chat_activity"`
}

// Pagination normalizes page parameters and computes the page count
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize applies defaults and caps the page size at 100
func (p Pagination) Normalize(defaultSize int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset returns the row offset of the page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the number of pages needed for total rows
func (p Pagination) TotalPages(total int64) int {
	if p.PageSize < 1 {
		return 0
	}
	pages := int(total) / p.PageSize
	if int(total)%p.PageSize > 0 {
		pages++
	}
	return pages
}
