//go:build integration

package es

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	estesting "github.com/DjordjeVuckovic/nouvel-ayiti/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container := estesting.NewESContainer(ctx, t)

	s, err := NewStorer(ctx, ClientConfig{
		Addresses:   []string{container.Address},
		IndexPrefix: "it",
	})
	require.NoError(t, err)
	assert.True(t, s.Healthy(ctx))

	t.Run("ids are sequential", func(t *testing.T) {
		first, err := s.CreateVideo(ctx, domain.Video{Title: "A", VideoURL: "https://v/a", Language: domain.LanguageFrench})
		require.NoError(t, err)
		second, err := s.CreateVideo(ctx, domain.Video{Title: "B", VideoURL: "https://v/b", Language: domain.LanguageFrench})
		require.NoError(t, err)
		assert.Equal(t, first.ID+1, second.ID)

		list, err := s.ListVideos(ctx, domain.VideoFilter{Language: domain.LanguageFrench})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("votes and views", func(t *testing.T) {
		poll, err := s.CreatePoll(ctx, domain.Poll{
			Question: "Oui ou non?",
			Options:  []string{"Oui", "Non. Jamais"},
			Active:   true,
			Language: domain.LanguageFrench,
		})
		require.NoError(t, err)

		const voters = 20
		var wg sync.WaitGroup
		for i := 0; i < voters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.VotePoll(ctx, poll.ID, "Non. Jamais")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.GetPoll(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(voters), got.Results["Non. Jamais"])

		_, err = s.VotePoll(ctx, poll.ID, "Peut-être")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		article, err := s.CreateArticle(ctx, domain.Article{Title: "T", Category: "politique", Language: domain.LanguageFrench})
		require.NoError(t, err)
		require.NoError(t, s.IncrementArticleViews(ctx, article.ID))
		assert.ErrorIs(t, s.IncrementArticleViews(ctx, article.ID+1000), storage.ErrNotFound)

		top, err := s.MostViewedArticles(ctx, domain.LanguageFrench, 5)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, int64(1), top[0].ViewCount)
	})

	t.Run("conflicts", func(t *testing.T) {
		_, err := s.CreateUser(ctx, domain.User{Username: "editor", Password: "hash"})
		require.NoError(t, err)
		_, err = s.CreateUser(ctx, domain.User{Username: "editor", Password: "hash"})
		assert.ErrorIs(t, err, storage.ErrConflict)

		user, err := s.GetUserByUsername(ctx, "editor")
		require.NoError(t, err)
		byID, err := s.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "editor", byID.Username)
	})

	t.Run("listing pages past one search request", func(t *testing.T) {
		s.pageSize = 2
		defer func() { s.pageSize = defaultPageSize }()

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		categories := []string{"ekonomi", "ekonomi", "sante", "ekonomi", "sante"}
		for i, category := range categories {
			_, err := s.CreateArticle(ctx, domain.Article{
				Title:       "Atik " + strconv.Itoa(i),
				Category:    category,
				Language:    domain.LanguageCreole,
				PublishedAt: base.Add(time.Duration(i) * time.Hour),
			})
			require.NoError(t, err)
		}

		list, err := s.ListArticles(ctx, domain.ArticleFilter{Language: domain.LanguageCreole})
		require.NoError(t, err)
		require.Len(t, list, len(categories))
		for i := 1; i < len(list); i++ {
			assert.True(t, list[i-1].PublishedAt.After(list[i].PublishedAt))
		}

		counts, err := s.CategoryCounts(ctx, domain.LanguageCreole)
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"ekonomi": 3, "sante": 2}, counts)

		top, err := s.MostViewedArticles(ctx, domain.LanguageCreole, 3)
		require.NoError(t, err)
		assert.Len(t, top, 3)
	})

	t.Run("deleting a category removes its subcategories", func(t *testing.T) {
		category, err := s.CreateCategory(ctx, domain.Category{Name: "spo", Label: "Espò", Language: domain.LanguageCreole})
		require.NoError(t, err)
		for _, name := range []string{"foutbol", "baskèt"} {
			_, err := s.CreateSubcategory(ctx, domain.Subcategory{CategoryID: category.ID, Name: name, Label: name})
			require.NoError(t, err)
		}

		deleted, err := s.DeleteCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		subs, err := s.subcategoriesOf(ctx, category.ID)
		require.NoError(t, err)
		assert.Empty(t, subs)

		deleted, err = s.DeleteCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
