package in_mem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

func (s *InMemStorer) CreateArticle(ctx context.Context, article domain.Article) (*domain.Article, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	article.ID = s.nextID("articles")
	if article.PublishedAt.IsZero() {
		article.PublishedAt = s.now()
	}
	article.ViewCount = 0
	article.CommentCount = 0
	s.articles[article.ID] = article

	slog.Debug("Saved article to in-memory storage", "id", article.ID, "title", article.Title)
	return &article, nil
}

func (s *InMemStorer) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	article, ok := s.articles[id]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, storage.ErrNotFound)
	}
	return &article, nil
}

func (s *InMemStorer) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	articles := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if filter.Match(a) {
			articles = append(articles, a)
		}
	}
	storage.SortArticlesByRecency(articles)
	return articles, nil
}

func (s *InMemStorer) UpdateArticle(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	article, ok := s.articles[id]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, storage.ErrNotFound)
	}
	article = article.Apply(patch)
	s.articles[id] = article
	return &article, nil
}

func (s *InMemStorer) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.articles[id]; !ok {
		return false, nil
	}
	delete(s.articles, id)
	return true, nil
}

func (s *InMemStorer) IncrementArticleViews(ctx context.Context, id int64) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	article, ok := s.articles[id]
	if !ok {
		return fmt.Errorf("article %d: %w", id, storage.ErrNotFound)
	}
	article.ViewCount++
	s.articles[id] = article
	return nil
}

func (s *InMemStorer) MostViewedArticles(ctx context.Context, lang domain.Language, limit int) ([]domain.Article, error) {
	articles, err := s.ListArticles(ctx, domain.ArticleFilter{Language: lang})
	if err != nil {
		return nil, err
	}
	storage.SortArticlesByViews(articles)
	if limit >= 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

func (s *InMemStorer) CategoryCounts(ctx context.Context, lang domain.Language) (map[string]int64, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	counts := make(map[string]int64)
	for _, a := range s.articles {
		if a.Language == lang {
			counts[a.Category]++
		}
	}
	return counts, nil
}
