package domain

import "time"

type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	Duration     string    `json:"duration"`
	PublishedAt  time.Time `json:"publishedAt"`
	Language     Language  `json:"language"`
	Category     *string   `json:"category,omitempty"`
	Author       *string   `json:"author,omitempty"`
	Description  *string   `json:"description,omitempty"`
}

type VideoPatch struct {
	Title        *string    `json:"title,omitempty"`
	ThumbnailURL *string    `json:"thumbnailUrl,omitempty"`
	VideoURL     *string    `json:"videoUrl,omitempty"`
	Duration     *string    `json:"duration,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	Language     *Language  `json:"language,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Author       *string    `json:"author,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

func (v Video) Apply(p VideoPatch) Video {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.ThumbnailURL != nil {
		v.ThumbnailURL = *p.ThumbnailURL
	}
	if p.VideoURL != nil {
		v.VideoURL = *p.VideoURL
	}
	if p.Duration != nil {
		v.Duration = *p.Duration
	}
	if p.PublishedAt != nil {
		v.PublishedAt = *p.PublishedAt
	}
	if p.Language != nil {
		v.Language = *p.Language
	}
	if p.Category != nil {
		v.Category = copyString(p.Category)
	}
	if p.Author != nil {
		v.Author = copyString(p.Author)
	}
	if p.Description != nil {
		v.Description = copyString(p.Description)
	}
	return v
}

func (p VideoPatch) IsEmpty() bool {
	return p == VideoPatch{}
}

type VideoFilter struct {
	Language Language
	Category string
}

func (f VideoFilter) Match(v Video) bool {
	if f.Language != "" && v.Language != f.Language {
		return false
	}
	if f.Category != "" && (v.Category == nil || *v.Category != f.Category) {
		return false
	}
	return true
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
