package models

import "time"

// Category groups posts.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Page is a CMS page. Pages nest one level: a child's link is /parent-slug/slug.
type Page struct {
	ID        int64     `json:"id" db:"id"`
	ParentID  *int64    `json:"parent_id" db:"parent_id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Link      string    `json:"link" db:"link"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Parent    *Page     `json:"parent,omitempty"`
}

// PageLink computes the link path of a page under an optional parent.
func PageLink(parent *Page, slug string) string {
	if parent == nil {
		return "/" + slug
	}
	return "/" + parent.Slug + "/" + slug
}

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// Post is a CMS article written by a user.
type Post struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	PageID     *int64     `json:"page_id" db:"page_id"`
	CategoryID *int64     `json:"category_id" db:"category_id"`
	Title      string     `json:"title" db:"title"`
	Slug       string     `json:"slug" db:"slug"`
	Content    string     `json:"content" db:"content"`
	Image      *string    `json:"image" db:"image"`
	Status     PostStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	Author     *User      `json:"author,omitempty"`
	Category   *Category  `json:"category,omitempty"`
	Page       *Page      `json:"page,omitempty"`
}
