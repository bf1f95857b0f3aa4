package models

import (
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// GalleryItem is a photo or video shown on the gallery page
type GalleryItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MediaType   string    `gorm:"type:text;not null" json:"media_type"`
	MediaURL    string    `gorm:"type:text;not null" json:"media_url"`
	Title       string    `gorm:"type:text" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name
func (GalleryItem) TableName() string {
	return "gallery_items"
}

// CreateGalleryItemRequest represents gallery item creation request
type CreateGalleryItemRequest struct {
	MediaURL    string `json:"media_url" form:"media_url"`
	MediaType   string `json:"media_type" form:"media_type"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
}

// InferMediaType guesses image or video from the URL's file extension
func InferMediaType(mediaURL string) string {
	p := mediaURL
	if u, err := url.Parse(mediaURL); err == nil {
		p = u.Path
	}
	if videoExtensions[strings.ToLower(path.Ext(p))] {
		return MediaTypeVideo
	}
	return MediaTypeImage
}
