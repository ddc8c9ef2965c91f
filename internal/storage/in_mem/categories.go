package in_mem

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

func (s *InMemStorer) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, c := range s.categories {
		if c.Language == category.Language && c.Name == category.Name {
			return nil, fmt.Errorf("category %q (%s): %w", category.Name, category.Language, storage.ErrConflict)
		}
	}

	category.ID = s.nextID("categories")
	if category.CreatedAt.IsZero() {
		category.CreatedAt = s.now()
	}
	category.Subcategories = nil
	s.categories[category.ID] = category

	category.Subcategories = []domain.Subcategory{}
	return &category, nil
}

// ListCategories orders categories and their subcategories by name.
func (s *InMemStorer) ListCategories(ctx context.Context, lang domain.Language) ([]domain.Category, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	children := make(map[int64][]domain.Subcategory)
	for _, sub := range s.subcategories {
		children[sub.CategoryID] = append(children[sub.CategoryID], sub)
	}

	categories := make([]domain.Category, 0)
	for _, c := range s.categories {
		if c.Language != lang {
			continue
		}
		subs := children[c.ID]
		slices.SortFunc(subs, func(a, b domain.Subcategory) int {
			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
		})
		if subs == nil {
			subs = []domain.Subcategory{}
		}
		c.Subcategories = subs
		categories = append(categories, c)
	}
	slices.SortFunc(categories, func(a, b domain.Category) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return categories, nil
}

func (s *InMemStorer) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	for subID, sub := range s.subcategories {
		if sub.CategoryID == id {
			delete(s.subcategories, subID)
		}
	}
	return true, nil
}

func (s *InMemStorer) CreateSubcategory(ctx context.Context, sub domain.Subcategory) (*domain.Subcategory, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.categories[sub.CategoryID]; !ok {
		return nil, fmt.Errorf("category %d: %w", sub.CategoryID, storage.ErrNotFound)
	}
	sub.ID = s.nextID("subcategories")
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
	}
	s.subcategories[sub.ID] = sub
	return &sub, nil
}

func (s *InMemStorer) DeleteSubcategory(ctx context.Context, id int64) (bool, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.subcategories[id]; !ok {
		return false, nil
	}
	delete(s.subcategories, id)
	return true, nil
}
