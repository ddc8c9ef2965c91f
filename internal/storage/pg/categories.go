package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/jackc/pgx/v5"
)

func (s *Storer) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	cmd := `
		INSERT INTO categories (name, label, language, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRow(ctx, cmd, category.Name, category.Label, string(category.Language), category.CreatedAt).
		Scan(&category.ID)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("category %q (%s): %w", category.Name, category.Language, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	category.Subcategories = []domain.Subcategory{}
	return &category, nil
}

func (s *Storer) ListCategories(ctx context.Context, lang domain.Language) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, label, language, created_at
		FROM categories
		WHERE language = $1
		ORDER BY name, id
	`, string(lang))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		var l string
		err := row.Scan(&c.ID, &c.Name, &c.Label, &l, &c.CreatedAt)
		c.Language = domain.Language(l)
		c.Subcategories = []domain.Subcategory{}
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	if len(categories) == 0 {
		return categories, nil
	}

	ids := make([]int64, len(categories))
	index := make(map[int64]int, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
		index[c.ID] = i
	}

	subRows, err := s.db.Query(ctx, `
		SELECT id, category_id, name, label, created_at
		FROM subcategories
		WHERE category_id = ANY($1)
		ORDER BY name, id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}

	subs, err := pgx.CollectRows(subRows, func(row pgx.CollectableRow) (domain.Subcategory, error) {
		var sub domain.Subcategory
		err := row.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Label, &sub.CreatedAt)
		return sub, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan subcategories: %w", err)
	}
	for _, sub := range subs {
		i := index[sub.CategoryID]
		categories[i].Subcategories = append(categories[i].Subcategories, sub)
	}

	return categories, nil
}

func (s *Storer) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Storer) CreateSubcategory(ctx context.Context, sub domain.Subcategory) (*domain.Subcategory, error) {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	cmd := `
		INSERT INTO subcategories (category_id, name, label, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRow(ctx, cmd, sub.CategoryID, sub.Name, sub.Label, sub.CreatedAt).Scan(&sub.ID)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return nil, fmt.Errorf("category %d: %w", sub.CategoryID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to insert subcategory: %w", err)
	}
	return &sub, nil
}

func (s *Storer) DeleteSubcategory(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete subcategory %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
