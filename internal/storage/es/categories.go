package es

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
)

// categoryKey makes (language, name) the document id so _create rejects
// duplicates. The name is hex encoded to keep the id URL safe.
func categoryKey(lang domain.Language, name string) string {
	return string(lang) + "-" + hex.EncodeToString([]byte(name))
}

func (e *Storer) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	id, err := e.nextID(ctx, "categories")
	if err != nil {
		return nil, err
	}

	category.ID = id
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	doc := categoryDocument{
		ID:        category.ID,
		Name:      category.Name,
		Label:     category.Label,
		Language:  string(category.Language),
		CreatedAt: category.CreatedAt,
	}
	_, err = e.client.Create(e.indices.categories, categoryKey(category.Language, category.Name)).
		Document(doc).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		if isStatus(err, http.StatusConflict) {
			return nil, fmt.Errorf("category %q (%s): %w", category.Name, category.Language, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	category.Subcategories = []domain.Subcategory{}
	return &category, nil
}

func (e *Storer) ListCategories(ctx context.Context, lang domain.Language) ([]domain.Category, error) {
	query := termQuery("language", string(lang))
	hits, err := e.search(ctx, e.indices.categories, &query, allHits, asc("name"), asc("id"))
	if err != nil {
		return nil, err
	}
	docs, err := decodeHits[categoryDocument](hits)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		c := d.toDomain()
		subs, err := e.subcategoriesOf(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Subcategories = subs
		categories = append(categories, c)
	}
	return categories, nil
}

func (e *Storer) subcategoriesOf(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	query := termQuery("category_id", categoryID)
	hits, err := e.search(ctx, e.indices.subcategories, &query, allHits, asc("name"), asc("id"))
	if err != nil {
		return nil, err
	}
	docs, err := decodeHits[subcategoryDocument](hits)
	if err != nil {
		return nil, err
	}
	subs := make([]domain.Subcategory, 0, len(docs))
	for _, d := range docs {
		subs = append(subs, d.toDomain())
	}
	return subs, nil
}

// findCategory returns the document id of the category, or "" when missing.
func (e *Storer) findCategory(ctx context.Context, id int64) (string, error) {
	query := termQuery("id", id)
	hits, err := e.search(ctx, e.indices.categories, &query, 1, asc("id"), asc("created_at"))
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return "", nil
	}
	return hits[0].id, nil
}

// DeleteCategory removes the category document first, which is the single
// write that decides the outcome. Subcategories are only reachable through
// their parent, so a failed sweep leaves orphans nobody can list.
func (e *Storer) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	key, err := e.findCategory(ctx, id)
	if err != nil || key == "" {
		return false, err
	}

	deleted, err := e.remove(ctx, e.indices.categories, key)
	if err != nil || !deleted {
		return deleted, err
	}

	query := termQuery("category_id", id)
	if _, err := e.client.DeleteByQuery(e.indices.subcategories).
		Query(&query).
		Refresh(true).
		Do(ctx); err != nil {
		slog.Warn("failed to delete subcategories of removed category", "category_id", id, "error", err)
	}
	return true, nil
}

func (e *Storer) CreateSubcategory(ctx context.Context, sub domain.Subcategory) (*domain.Subcategory, error) {
	key, err := e.findCategory(ctx, sub.CategoryID)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("category %d: %w", sub.CategoryID, storage.ErrNotFound)
	}

	id, err := e.nextID(ctx, "subcategories")
	if err != nil {
		return nil, err
	}
	sub.ID = id
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	doc := subcategoryDocument{
		ID:         sub.ID,
		CategoryID: sub.CategoryID,
		Name:       sub.Name,
		Label:      sub.Label,
		CreatedAt:  sub.CreatedAt,
	}
	if err := e.put(ctx, e.indices.subcategories, docID(id), doc); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (e *Storer) DeleteSubcategory(ctx context.Context, id int64) (bool, error) {
	return e.remove(ctx, e.indices.subcategories, docID(id))
}
