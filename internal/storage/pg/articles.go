package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/jackc/pgx/v5"
)

const articleColumns = `id, title, content, excerpt, cover_image, category, author, published_at, view_count, comment_count, language`

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	var lang string
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Excerpt,
		&a.CoverImage,
		&a.Category,
		&a.Author,
		&a.PublishedAt,
		&a.ViewCount,
		&a.CommentCount,
		&lang,
	)
	a.Language = domain.Language(lang)
	return a, err
}

func collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	articles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Article, error) {
		return scanArticle(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan articles: %w", err)
	}
	return articles, nil
}

func (s *Storer) CreateArticle(ctx context.Context, article domain.Article) (*domain.Article, error) {
	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now()
	}

	cmd := `
		INSERT INTO articles (title, content, excerpt, cover_image, category, author, published_at, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + articleColumns

	created, err := scanArticle(s.db.QueryRow(ctx, cmd,
		article.Title,
		article.Content,
		article.Excerpt,
		article.CoverImage,
		article.Category,
		article.Author,
		article.PublishedAt,
		string(article.Language),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}
	return &created, nil
}

func (s *Storer) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	a, err := scanArticle(s.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "article %d", id)
	}
	return &a, nil
}

func (s *Storer) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	q := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE ($1 = '' OR language = $1)
		  AND ($2 = '' OR category = $2)
		ORDER BY published_at DESC, id DESC
	`
	rows, err := s.db.Query(ctx, q, string(filter.Language), filter.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return collectArticles(rows)
}

func (s *Storer) UpdateArticle(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error) {
	cmd := `
		UPDATE articles SET
			title        = COALESCE($2, title),
			content      = COALESCE($3, content),
			excerpt      = COALESCE($4, excerpt),
			cover_image  = COALESCE($5, cover_image),
			category     = COALESCE($6, category),
			author       = COALESCE($7, author),
			published_at = COALESCE($8, published_at),
			language     = COALESCE($9, language)
		WHERE id = $1
		RETURNING ` + articleColumns

	a, err := scanArticle(s.db.QueryRow(ctx, cmd,
		id,
		patch.Title,
		patch.Content,
		patch.Excerpt,
		patch.CoverImage,
		patch.Category,
		patch.Author,
		patch.PublishedAt,
		langPtr(patch.Language),
	))
	if err != nil {
		return nil, notFound(err, "update article %d", id)
	}
	return &a, nil
}

func (s *Storer) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete article %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Storer) IncrementArticleViews(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `UPDATE articles SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views of article %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("article %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Storer) MostViewedArticles(ctx context.Context, lang domain.Language, limit int) ([]domain.Article, error) {
	q := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE language = $1
		ORDER BY view_count DESC, id DESC
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, q, string(lang), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query most viewed articles: %w", err)
	}
	return collectArticles(rows)
}

func (s *Storer) CategoryCounts(ctx context.Context, lang domain.Language) (map[string]int64, error) {
	rows, err := s.db.Query(ctx, `SELECT category, COUNT(*) FROM articles WHERE language = $1 GROUP BY category`, string(lang))
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var n int64
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return counts, nil
}
