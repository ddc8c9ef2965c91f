package domain

import (
	"time"
)

type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Excerpt      string    `json:"excerpt"`
	CoverImage   *string   `json:"coverImage,omitempty"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	PublishedAt  time.Time `json:"publishedAt"`
	ViewCount    int64     `json:"viewCount"`
	CommentCount int64     `json:"commentCount"`
	Language     Language  `json:"language"`
}

// ArticlePatch holds the fields of a partial update. Nil fields are left untouched.
type ArticlePatch struct {
	Title       *string    `json:"title,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	CoverImage  *string    `json:"coverImage,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Author      *string    `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Language    *Language  `json:"language,omitempty"`
}

func (a Article) Apply(p ArticlePatch) Article {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Excerpt != nil {
		a.Excerpt = *p.Excerpt
	}
	if p.CoverImage != nil {
		img := *p.CoverImage
		a.CoverImage = &img
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	if p.PublishedAt != nil {
		a.PublishedAt = *p.PublishedAt
	}
	if p.Language != nil {
		a.Language = *p.Language
	}
	return a
}

func (p ArticlePatch) IsEmpty() bool {
	return p == ArticlePatch{}
}

// ArticleFilter is conjunctive: every non-empty field must match.
type ArticleFilter struct {
	Language Language
	Category string
}

func (f ArticleFilter) Match(a Article) bool {
	if f.Language != "" && a.Language != f.Language {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	return true
}
