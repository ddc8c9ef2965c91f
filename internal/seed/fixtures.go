// Package seed loads YAML fixtures and imports them into a store.
package seed

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
)

const (
	Kind    = "Fixtures"
	Version = "v1"
)

type Fixtures struct {
	Kind       string            `yaml:"kind"`
	Version    string            `yaml:"version"`
	Metadata   Metadata          `yaml:"metadata"`
	Users      []UserFixture     `yaml:"users"`
	Categories []CategoryFixture `yaml:"categories"`
	Articles   []ArticleFixture  `yaml:"articles"`
	Polls      []PollFixture     `yaml:"polls"`
	Videos     []VideoFixture    `yaml:"videos"`
}

type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// UserFixture carries a plain-text password that is hashed on import.
type UserFixture struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	IsAdmin  bool   `yaml:"isAdmin"`
}

type CategoryFixture struct {
	Name          string               `yaml:"name"`
	Label         string               `yaml:"label"`
	Language      domain.Language      `yaml:"language"`
	Subcategories []SubcategoryFixture `yaml:"subcategories"`
}

type SubcategoryFixture struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type ArticleFixture struct {
	Title       string          `yaml:"title"`
	Content     string          `yaml:"content"`
	Excerpt     string          `yaml:"excerpt"`
	CoverImage  *string         `yaml:"coverImage"`
	Category    string          `yaml:"category"`
	Author      string          `yaml:"author"`
	PublishedAt time.Time       `yaml:"publishedAt"`
	Language    domain.Language `yaml:"language"`
	// Views are replayed one increment at a time.
	Views int64 `yaml:"views"`
}

type PollFixture struct {
	Question string          `yaml:"question"`
	Options  []string        `yaml:"options"`
	Active   *bool           `yaml:"active"`
	Language domain.Language `yaml:"language"`
	// Votes are replayed through the store so the tally invariant holds.
	Votes map[string]int64 `yaml:"votes"`
}

type VideoFixture struct {
	Title        string          `yaml:"title"`
	ThumbnailURL string          `yaml:"thumbnailUrl"`
	VideoURL     string          `yaml:"videoUrl"`
	Duration     string          `yaml:"duration"`
	PublishedAt  time.Time       `yaml:"publishedAt"`
	Language     domain.Language `yaml:"language"`
	Category     *string         `yaml:"category"`
	Author       *string         `yaml:"author"`
	Description  *string         `yaml:"description"`
}

func (f *Fixtures) Validate() error {
	if f.Kind != Kind {
		return fmt.Errorf("kind must be %q, got %q", Kind, f.Kind)
	}
	if f.Version != Version {
		return fmt.Errorf("unsupported version %q", f.Version)
	}

	for i, u := range f.Users {
		if u.Username == "" || u.Password == "" {
			return fmt.Errorf("users[%d] must have username and password", i)
		}
	}
	for i, c := range f.Categories {
		if c.Name == "" {
			return fmt.Errorf("categories[%d] must have a name", i)
		}
		if !c.Language.Valid() {
			return fmt.Errorf("categories[%d] has unsupported language %q", i, c.Language)
		}
	}
	for i, a := range f.Articles {
		if a.Title == "" || a.Category == "" {
			return fmt.Errorf("articles[%d] must have title and category", i)
		}
		if !a.Language.Valid() {
			return fmt.Errorf("articles[%d] has unsupported language %q", i, a.Language)
		}
		if a.Views < 0 {
			return fmt.Errorf("articles[%d] has negative views", i)
		}
	}
	for i, p := range f.Polls {
		if err := p.validate(); err != nil {
			return fmt.Errorf("polls[%d]: %w", i, err)
		}
	}
	for i, v := range f.Videos {
		if v.Title == "" || v.VideoURL == "" {
			return fmt.Errorf("videos[%d] must have title and videoUrl", i)
		}
		if !v.Language.Valid() {
			return fmt.Errorf("videos[%d] has unsupported language %q", i, v.Language)
		}
	}
	return nil
}

func (p PollFixture) validate() error {
	if p.Question == "" {
		return fmt.Errorf("question is required")
	}
	if len(p.Options) < 2 {
		return fmt.Errorf("at least two options are required")
	}
	if !p.Language.Valid() {
		return fmt.Errorf("unsupported language %q", p.Language)
	}
	poll := domain.Poll{Options: p.Options}
	for option, n := range p.Votes {
		if !poll.HasOption(option) {
			return fmt.Errorf("votes reference unknown option %q", option)
		}
		if n < 0 {
			return fmt.Errorf("negative votes for option %q", option)
		}
	}
	return nil
}

func (a ArticleFixture) toDomain() domain.Article {
	return domain.Article{
		Title:       a.Title,
		Content:     a.Content,
		Excerpt:     a.Excerpt,
		CoverImage:  a.CoverImage,
		Category:    a.Category,
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
		Language:    a.Language,
	}
}

func (p PollFixture) toDomain() domain.Poll {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return domain.Poll{
		Question: p.Question,
		Options:  p.Options,
		Active:   active,
		Language: p.Language,
	}
}

func (v VideoFixture) toDomain() domain.Video {
	return domain.Video{
		Title:        v.Title,
		ThumbnailURL: v.ThumbnailURL,
		VideoURL:     v.VideoURL,
		Duration:     v.Duration,
		PublishedAt:  v.PublishedAt,
		Language:     v.Language,
		Category:     v.Category,
		Author:       v.Author,
		Description:  v.Description,
	}
}
