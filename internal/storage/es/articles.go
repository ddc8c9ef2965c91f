package es

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const incrementViewsScript = `ctx._source.view_count += 1`

func articleQuery(filter domain.ArticleFilter) *types.Query {
	var filters []types.Query
	if filter.Language != "" {
		filters = append(filters, termQuery("language", string(filter.Language)))
	}
	if filter.Category != "" {
		filters = append(filters, termQuery("category", filter.Category))
	}
	return filterQuery(filters...)
}

func (e *Storer) CreateArticle(ctx context.Context, article domain.Article) (*domain.Article, error) {
	id, err := e.nextID(ctx, "articles")
	if err != nil {
		return nil, err
	}

	article.ID = id
	article.ViewCount = 0
	article.CommentCount = 0
	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now()
	}

	if err := e.put(ctx, e.indices.articles, docID(id), toArticleDocument(article)); err != nil {
		return nil, err
	}
	return &article, nil
}

func (e *Storer) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var doc articleDocument
	found, err := e.get(ctx, e.indices.articles, docID(id), &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("article %d: %w", id, storage.ErrNotFound)
	}
	a := doc.toDomain()
	return &a, nil
}

func (e *Storer) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	hits, err := e.search(ctx, e.indices.articles, articleQuery(filter), allHits, desc("published_at"), desc("id"))
	if err != nil {
		return nil, err
	}
	return articlesFromHits(hits)
}

func (e *Storer) UpdateArticle(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error) {
	var updated domain.Article
	err := e.compareAndSwap(ctx, e.indices.articles, docID(id), func(source json.RawMessage) (any, error) {
		var doc articleDocument
		if err := json.Unmarshal(source, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal article %d: %w", id, err)
		}
		updated = doc.toDomain().Apply(patch)
		return toArticleDocument(updated), nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Storer) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	return e.remove(ctx, e.indices.articles, docID(id))
}

func (e *Storer) IncrementArticleViews(ctx context.Context, id int64) error {
	_, err := e.scriptedUpdate(ctx, e.indices.articles, docID(id), incrementViewsScript, nil)
	return err
}

func (e *Storer) MostViewedArticles(ctx context.Context, lang domain.Language, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		return []domain.Article{}, nil
	}
	query := articleQuery(domain.ArticleFilter{Language: lang})
	hits, err := e.search(ctx, e.indices.articles, query, limit, desc("view_count"), desc("id"))
	if err != nil {
		return nil, err
	}
	return articlesFromHits(hits)
}

// maxCategoryBuckets bounds the terms aggregation. Counts are refused rather
// than truncated when a language has more distinct categories.
const maxCategoryBuckets = 10000

func (e *Storer) CategoryCounts(ctx context.Context, lang domain.Language) (map[string]int64, error) {
	field := "category"
	size := maxCategoryBuckets
	res, err := e.client.Search().
		Index(e.indices.articles).
		Query(orMatchAll(articleQuery(domain.ArticleFilter{Language: lang}))).
		Size(0).
		TypedKeys(true).
		Aggregations(map[string]types.Aggregations{
			"by_category": {
				Terms: &types.TermsAggregation{Field: &field, Size: &size},
			},
		}).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate article categories: %w", err)
	}

	raw, found := res.Aggregations["by_category"]
	if !found {
		return map[string]int64{}, nil
	}
	agg, ok := raw.(*types.StringTermsAggregate)
	if !ok {
		return nil, fmt.Errorf("unexpected category aggregate of type %T", raw)
	}
	if agg.SumOtherDocCount != nil && *agg.SumOtherDocCount > 0 {
		return nil, fmt.Errorf("more than %d categories in %s, counts would be incomplete", maxCategoryBuckets, lang)
	}

	return countsFromBuckets(agg.Buckets)
}

func countsFromBuckets(buckets types.BucketsStringTermsBucket) (map[string]int64, error) {
	counts := make(map[string]int64)
	add := func(b types.StringTermsBucket) {
		counts[fmt.Sprint(b.Key)] = b.DocCount
	}
	switch bs := buckets.(type) {
	case []types.StringTermsBucket:
		for _, b := range bs {
			add(b)
		}
	case map[string]types.StringTermsBucket:
		for key, b := range bs {
			b.Key = key
			add(b)
		}
	case nil:
	default:
		return nil, fmt.Errorf("unexpected category buckets of type %T", buckets)
	}
	return counts, nil
}

func articlesFromHits(hits []hit) ([]domain.Article, error) {
	docs, err := decodeHits[articleDocument](hits)
	if err != nil {
		return nil, err
	}
	articles := make([]domain.Article, 0, len(docs))
	for _, d := range docs {
		articles = append(articles, d.toDomain())
	}
	return articles, nil
}
