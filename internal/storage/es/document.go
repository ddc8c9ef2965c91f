package es

import (
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
)

type articleDocument struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Excerpt      string    `json:"excerpt"`
	CoverImage   *string   `json:"cover_image,omitempty"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	PublishedAt  time.Time `json:"published_at"`
	ViewCount    int64     `json:"view_count"`
	CommentCount int64     `json:"comment_count"`
	Language     string    `json:"language"`
}

func toArticleDocument(a domain.Article) articleDocument {
	return articleDocument{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		Excerpt:      a.Excerpt,
		CoverImage:   a.CoverImage,
		Category:     a.Category,
		Author:       a.Author,
		PublishedAt:  a.PublishedAt,
		ViewCount:    a.ViewCount,
		CommentCount: a.CommentCount,
		Language:     string(a.Language),
	}
}

func (d articleDocument) toDomain() domain.Article {
	return domain.Article{
		ID:           d.ID,
		Title:        d.Title,
		Content:      d.Content,
		Excerpt:      d.Excerpt,
		CoverImage:   d.CoverImage,
		Category:     d.Category,
		Author:       d.Author,
		PublishedAt:  d.PublishedAt,
		ViewCount:    d.ViewCount,
		CommentCount: d.CommentCount,
		Language:     domain.Language(d.Language),
	}
}

type pollDocument struct {
	ID        int64            `json:"id"`
	Question  string           `json:"question"`
	Options   []string         `json:"options"`
	Results   map[string]int64 `json:"results"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"created_at"`
	Language  string           `json:"language"`
}

func toPollDocument(p domain.Poll) pollDocument {
	return pollDocument{
		ID:        p.ID,
		Question:  p.Question,
		Options:   p.Options,
		Results:   p.Results,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		Language:  string(p.Language),
	}
}

func (d pollDocument) toDomain() domain.Poll {
	results := d.Results
	if results == nil {
		results = map[string]int64{}
	}
	return domain.Poll{
		ID:        d.ID,
		Question:  d.Question,
		Options:   d.Options,
		Results:   results,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		Language:  domain.Language(d.Language),
	}
}

type videoDocument struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `json:"video_url"`
	Duration     string    `json:"duration"`
	PublishedAt  time.Time `json:"published_at"`
	Language     string    `json:"language"`
	Category     *string   `json:"category,omitempty"`
	Author       *string   `json:"author,omitempty"`
	Description  *string   `json:"description,omitempty"`
}

func toVideoDocument(v domain.Video) videoDocument {
	return videoDocument{
		ID:           v.ID,
		Title:        v.Title,
		ThumbnailURL: v.ThumbnailURL,
		VideoURL:     v.VideoURL,
		Duration:     v.Duration,
		PublishedAt:  v.PublishedAt,
		Language:     string(v.Language),
		Category:     v.Category,
		Author:       v.Author,
		Description:  v.Description,
	}
}

func (d videoDocument) toDomain() domain.Video {
	return domain.Video{
		ID:           d.ID,
		Title:        d.Title,
		ThumbnailURL: d.ThumbnailURL,
		VideoURL:     d.VideoURL,
		Duration:     d.Duration,
		PublishedAt:  d.PublishedAt,
		Language:     domain.Language(d.Language),
		Category:     d.Category,
		Author:       d.Author,
		Description:  d.Description,
	}
}

type userDocument struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDocument(u domain.User) userDocument {
	return userDocument{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Username:  d.Username,
		Password:  d.Password,
		IsAdmin:   d.IsAdmin,
		CreatedAt: d.CreatedAt,
	}
}

type categoryDocument struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

func (d categoryDocument) toDomain() domain.Category {
	return domain.Category{
		ID:            d.ID,
		Name:          d.Name,
		Label:         d.Label,
		Language:      domain.Language(d.Language),
		CreatedAt:     d.CreatedAt,
		Subcategories: []domain.Subcategory{},
	}
}

type subcategoryDocument struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"category_id"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"created_at"`
}

func (d subcategoryDocument) toDomain() domain.Subcategory {
	return domain.Subcategory{
		ID:         d.ID,
		CategoryID: d.CategoryID,
		Name:       d.Name,
		Label:      d.Label,
		CreatedAt:  d.CreatedAt,
	}
}
