package storage

import (
	"cmp"
	"slices"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
)

// Recency ordering shared by backends that sort in process. Ties on the
// timestamp are broken by the higher id, which is the later insert.

func SortArticlesByRecency(articles []domain.Article) {
	slices.SortStableFunc(articles, func(a, b domain.Article) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

func SortArticlesByViews(articles []domain.Article) {
	slices.SortStableFunc(articles, func(a, b domain.Article) int {
		if c := cmp.Compare(b.ViewCount, a.ViewCount); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

func SortPollsByRecency(polls []domain.Poll) {
	slices.SortStableFunc(polls, func(a, b domain.Poll) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

func SortVideosByRecency(videos []domain.Video) {
	slices.SortStableFunc(videos, func(a, b domain.Video) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
