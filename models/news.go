package models

import (
	"time"
)

// NewsPost is a published news article shown on the public site. A post is
// visible when status is active, published_at has passed and expired_at
// (when set) has not.
type NewsPost struct {
	NewsPostID  int        `gorm:"primaryKey;column:news_post_id" json:"news_post_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Slug        string     `gorm:"column:slug;unique" json:"slug"`
	Summary     string     `gorm:"column:summary" json:"summary"`
	Body        string     `gorm:"column:body" json:"body"`
	Status      string     `gorm:"column:status;type:enum('active','inactive');default:'active'" json:"status"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at"`
	ExpiredAt   *time.Time `gorm:"column:expired_at" json:"expired_at"`
	CreatedBy   int        `gorm:"column:created_by" json:"created_by"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// IsVisible reports whether the post should appear on public listings at t.
func (n *NewsPost) IsVisible(t time.Time) bool {
	if n.Status != "active" || n.DeleteAt != nil {
		return false
	}
	if n.PublishedAt != nil && n.PublishedAt.After(t) {
		return false
	}
	if n.ExpiredAt != nil && n.ExpiredAt.Before(t) {
		return false
	}
	return true
}

// ContentPage backs static legal/informational pages (privacy, terms,
// admissions policy) addressed by slug.
type ContentPage struct {
	ContentPageID int        `gorm:"primaryKey;column:content_page_id" json:"content_page_id"`
	Slug          string     `gorm:"column:slug;unique" json:"slug"`
	Title         string     `gorm:"column:title" json:"title"`
	Body          string     `gorm:"column:body" json:"body"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (NewsPost) TableName() string {
	return "news_posts"
}

func (ContentPage) TableName() string {
	return "content_pages"
}
