//go:build integration

package pg

import (
	"context"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	pgtesting "github.com/DjordjeVuckovic/nouvel-ayiti/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorer(t *testing.T) *Storer {
	t.Helper()
	ctx := context.Background()

	container := pgtesting.NewPGContainer(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)

	storer, err := NewStorer(pool)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storer.Close() })

	return storer
}

func TestStorer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	s := newTestStorer(t)
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		assert.True(t, s.Healthy(ctx))
	})

	t.Run("article lifecycle", func(t *testing.T) {
		created, err := s.CreateArticle(ctx, domain.Article{
			Title:    "Kanaval",
			Content:  "Lari a plen moun",
			Excerpt:  "Lari a",
			Category: "kilti",
			Author:   "Redaksyon",
			Language: domain.LanguageCreole,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Zero(t, created.ViewCount)

		require.NoError(t, s.IncrementArticleViews(ctx, created.ID))
		got, err := s.GetArticle(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ViewCount)

		title := "Kanaval 2026"
		updated, err := s.UpdateArticle(ctx, created.ID, domain.ArticlePatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, "Lari a plen moun", updated.Content)

		counts, err := s.CategoryCounts(ctx, domain.LanguageCreole)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts["kilti"])

		deleted, err := s.DeleteArticle(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = s.GetArticle(ctx, created.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.IncrementArticleViews(ctx, created.ID), storage.ErrNotFound)
	})

	t.Run("concurrent votes are all counted", func(t *testing.T) {
		poll, err := s.CreatePoll(ctx, domain.Poll{
			Question: "Ki pi bon?",
			Options:  []string{"Diri", "Mayi"},
			Active:   true,
			Language: domain.LanguageCreole,
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"Diri": 0, "Mayi": 0}, poll.Results)

		const voters = 50
		var wg sync.WaitGroup
		for i := 0; i < voters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.VotePoll(ctx, poll.ID, "Diri")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.GetPoll(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(voters), got.Results["Diri"])
		assert.Equal(t, int64(0), got.Results["Mayi"])

		_, err = s.VotePoll(ctx, poll.ID, "Pen")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		updated, err := s.UpdatePoll(ctx, poll.ID, domain.PollPatch{Options: []string{"Diri", "Pen"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"Diri": voters, "Pen": 0}, updated.Results)
	})

	t.Run("unique usernames", func(t *testing.T) {
		_, err := s.CreateUser(ctx, domain.User{Username: "admin", Password: "hash"})
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, domain.User{Username: "admin", Password: "hash"})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("categories cascade", func(t *testing.T) {
		cat, err := s.CreateCategory(ctx, domain.Category{Name: "sport", Label: "Espò", Language: domain.LanguageCreole})
		require.NoError(t, err)

		_, err = s.CreateCategory(ctx, domain.Category{Name: "sport", Label: "Espò", Language: domain.LanguageCreole})
		assert.ErrorIs(t, err, storage.ErrConflict)

		_, err = s.CreateSubcategory(ctx, domain.Subcategory{CategoryID: cat.ID, Name: "foutbol", Label: "Foutbòl"})
		require.NoError(t, err)

		_, err = s.CreateSubcategory(ctx, domain.Subcategory{CategoryID: cat.ID + 1000, Name: "x", Label: "x"})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		list, err := s.ListCategories(ctx, domain.LanguageCreole)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Len(t, list[0].Subcategories, 1)

		deleted, err := s.DeleteCategory(ctx, cat.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		list, err = s.ListCategories(ctx, domain.LanguageCreole)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
