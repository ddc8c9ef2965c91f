package dto

import (
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
)

type CreateArticleRequest struct {
	Title       string     `json:"title" validate:"required,min=5"`
	Content     string     `json:"content" validate:"required,min=50"`
	Excerpt     string     `json:"excerpt" validate:"required,min=10"`
	CoverImage  *string    `json:"coverImage,omitempty" validate:"omitempty,url"`
	Category    string     `json:"category" validate:"required"`
	Author      string     `json:"author" validate:"required"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Language    string     `json:"language" validate:"required,language"`
}

func (r CreateArticleRequest) ToDomain() domain.Article {
	a := domain.Article{
		Title:      r.Title,
		Content:    r.Content,
		Excerpt:    r.Excerpt,
		CoverImage: r.CoverImage,
		Category:   r.Category,
		Author:     r.Author,
		Language:   domain.Language(r.Language),
	}
	if r.PublishedAt != nil {
		a.PublishedAt = *r.PublishedAt
	}
	return a
}

// UpdateArticleRequest applies the create rules to whichever fields are present.
type UpdateArticleRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=5"`
	Content     *string    `json:"content,omitempty" validate:"omitempty,min=50"`
	Excerpt     *string    `json:"excerpt,omitempty" validate:"omitempty,min=10"`
	CoverImage  *string    `json:"coverImage,omitempty" validate:"omitempty,url"`
	Category    *string    `json:"category,omitempty" validate:"omitempty,min=1"`
	Author      *string    `json:"author,omitempty" validate:"omitempty,min=1"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Language    *string    `json:"language,omitempty" validate:"omitempty,language"`
}

func (r UpdateArticleRequest) ToPatch() domain.ArticlePatch {
	return domain.ArticlePatch{
		Title:       r.Title,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		CoverImage:  r.CoverImage,
		Category:    r.Category,
		Author:      r.Author,
		PublishedAt: r.PublishedAt,
		Language:    languagePtr(r.Language),
	}
}

func languagePtr(s *string) *domain.Language {
	if s == nil {
		return nil
	}
	l := domain.Language(*s)
	return &l
}
