package dto

import (
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
)

type CreateVideoRequest struct {
	Title        string     `json:"title" validate:"required,min=5"`
	ThumbnailURL string     `json:"thumbnailUrl" validate:"required,url"`
	VideoURL     string     `json:"videoUrl" validate:"required,url"`
	Duration     string     `json:"duration" validate:"required"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	Language     string     `json:"language" validate:"required,language"`
	Category     *string    `json:"category,omitempty"`
	Author       *string    `json:"author,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

func (r CreateVideoRequest) ToDomain() domain.Video {
	v := domain.Video{
		Title:        r.Title,
		ThumbnailURL: r.ThumbnailURL,
		VideoURL:     r.VideoURL,
		Duration:     r.Duration,
		Language:     domain.Language(r.Language),
		Category:     r.Category,
		Author:       r.Author,
		Description:  r.Description,
	}
	if r.PublishedAt != nil {
		v.PublishedAt = *r.PublishedAt
	}
	return v
}

type UpdateVideoRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=5"`
	ThumbnailURL *string    `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	VideoURL     *string    `json:"videoUrl,omitempty" validate:"omitempty,url"`
	Duration     *string    `json:"duration,omitempty" validate:"omitempty,min=1"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	Language     *string    `json:"language,omitempty" validate:"omitempty,language"`
	Category     *string    `json:"category,omitempty"`
	Author       *string    `json:"author,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

func (r UpdateVideoRequest) ToPatch() domain.VideoPatch {
	return domain.VideoPatch{
		Title:        r.Title,
		ThumbnailURL: r.ThumbnailURL,
		VideoURL:     r.VideoURL,
		Duration:     r.Duration,
		PublishedAt:  r.PublishedAt,
		Language:     languagePtr(r.Language),
		Category:     r.Category,
		Author:       r.Author,
		Description:  r.Description,
	}
}
