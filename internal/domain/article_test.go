package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArticle_Apply(t *testing.T) {
	published := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a := Article{
		ID:          1,
		Title:       "Tit",
		Content:     "Kontni",
		Excerpt:     "Rezime",
		Category:    "news",
		Author:      "Redaksyon",
		PublishedAt: published,
		ViewCount:   12,
		Language:    LanguageCreole,
	}
	title := "Nouvo tit"
	cover := "https://example.ht/img.jpg"

	got := a.Apply(ArticlePatch{Title: &title, CoverImage: &cover})

	assert.Equal(t, "Nouvo tit", got.Title)
	assert.Equal(t, &cover, got.CoverImage)
	assert.Equal(t, a.Content, got.Content)
	assert.Equal(t, a.Excerpt, got.Excerpt)
	assert.Equal(t, a.Category, got.Category)
	assert.Equal(t, a.Author, got.Author)
	assert.Equal(t, published, got.PublishedAt)
	assert.Equal(t, int64(12), got.ViewCount)

	cover = "changed"
	assert.Equal(t, "https://example.ht/img.jpg", *got.CoverImage)
}

func TestArticleFilter_Match(t *testing.T) {
	a := Article{Language: LanguageFrench, Category: "culture"}

	tests := []struct {
		name   string
		filter ArticleFilter
		want   bool
	}{
		{name: "empty", filter: ArticleFilter{}, want: true},
		{name: "language", filter: ArticleFilter{Language: LanguageFrench}, want: true},
		{name: "other language", filter: ArticleFilter{Language: LanguageCreole}, want: false},
		{name: "both", filter: ArticleFilter{Language: LanguageFrench, Category: "culture"}, want: true},
		{name: "other category", filter: ArticleFilter{Language: LanguageFrench, Category: "news"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(a))
		})
	}
}

func TestVideo_Apply(t *testing.T) {
	author := "Ekip"
	v := Video{Title: "Videyo", Duration: "01:00", Author: &author}
	d := "02:30"
	desc := "Deskripsyon"

	got := v.Apply(VideoPatch{Duration: &d, Description: &desc})

	assert.Equal(t, "02:30", got.Duration)
	assert.Equal(t, "Videyo", got.Title)
	assert.Equal(t, "Ekip", *got.Author)
	assert.Equal(t, "Deskripsyon", *got.Description)
	assert.True(t, VideoPatch{}.IsEmpty())
}
