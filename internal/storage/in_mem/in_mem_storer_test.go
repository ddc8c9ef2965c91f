package in_mem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ storage.Store = (*InMemStorer)(nil)

func newArticle(lang domain.Language, category string) domain.Article {
	return domain.Article{
		Title:    "Nouvèl sou ekonomi",
		Content:  "Ayiti ap fè anpil pwogrè nan domèn ekonomik la, malgre defi yo ki la toujou.",
		Excerpt:  "Ekonomi peyi a ap bouje",
		Category: category,
		Author:   "Jean Baptiste",
		Language: lang,
	}
}

func TestCreateArticle_AssignsDefaults(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewInMemStorer(WithClock(func() time.Time { return fixed }))

	in := newArticle(domain.LanguageCreole, "Economy")
	in.ViewCount = 42
	first, err := s.CreateArticle(ctx, in)
	require.NoError(t, err)
	second, err := s.CreateArticle(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, fixed, first.PublishedAt)
	assert.Zero(t, first.ViewCount)
	assert.Zero(t, first.CommentCount)
}

func TestIncrementArticleViews(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	a, err := s.CreateArticle(ctx, newArticle(domain.LanguageCreole, "Economy"))
	require.NoError(t, err)
	other, err := s.CreateArticle(ctx, newArticle(domain.LanguageCreole, "Economy"))
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.IncrementArticleViews(ctx, a.ID))
		require.NoError(t, s.IncrementArticleViews(ctx, other.ID))

		got, err := s.GetArticle(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.ViewCount)
	}

	err = s.IncrementArticleViews(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListArticles_FiltersAndOrdersByRecency(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, spec := range []struct {
		lang     domain.Language
		category string
	}{
		{domain.LanguageCreole, "news"},
		{domain.LanguageCreole, "politics"},
		{domain.LanguageFrench, "news"},
		{domain.LanguageCreole, "news"},
	} {
		a := newArticle(spec.lang, spec.category)
		a.PublishedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := s.CreateArticle(ctx, a)
		require.NoError(t, err)
	}

	all, err := s.ListArticles(ctx, domain.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []int64{4, 3, 2, 1}, articleIDs(all))

	both, err := s.ListArticles(ctx, domain.ArticleFilter{Language: domain.LanguageCreole, Category: "news"})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 1}, articleIDs(both))
}

func TestCategoryCounts(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	for _, c := range []string{"news", "news", "politics"} {
		_, err := s.CreateArticle(ctx, newArticle(domain.LanguageCreole, c))
		require.NoError(t, err)
	}
	_, err := s.CreateArticle(ctx, newArticle(domain.LanguageEnglish, "sports"))
	require.NoError(t, err)

	counts, err := s.CategoryCounts(ctx, domain.LanguageCreole)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"news": 2, "politics": 1}, counts)

	empty, err := s.CategoryCounts(ctx, domain.LanguageFrench)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateArticle_PartialIsNonDestructive(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	created, err := s.CreateArticle(ctx, newArticle(domain.LanguageCreole, "Economy"))
	require.NoError(t, err)

	title := "New title"
	updated, err := s.UpdateArticle(ctx, created.ID, domain.ArticlePatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Excerpt, updated.Excerpt)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.PublishedAt, updated.PublishedAt)

	_, err = s.UpdateArticle(ctx, 404, domain.ArticlePatch{Title: &title})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteArticle_ThenRead(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	created, err := s.CreateArticle(ctx, newArticle(domain.LanguageCreole, "Economy"))
	require.NoError(t, err)

	removed, err := s.DeleteArticle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteArticle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.GetArticle(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMostViewedArticles(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	views := []int{5, 1, 9, 3}
	ids := make([]int64, len(views))
	for i, n := range views {
		a, err := s.CreateArticle(ctx, newArticle(domain.LanguageFrench, "news"))
		require.NoError(t, err)
		ids[i] = a.ID
		for j := 0; j < n; j++ {
			require.NoError(t, s.IncrementArticleViews(ctx, a.ID))
		}
	}
	en, err := s.CreateArticle(ctx, newArticle(domain.LanguageEnglish, "news"))
	require.NoError(t, err)
	for j := 0; j < 20; j++ {
		require.NoError(t, s.IncrementArticleViews(ctx, en.ID))
	}

	top, err := s.MostViewedArticles(ctx, domain.LanguageFrench, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(9), top[0].ViewCount)
	assert.Equal(t, int64(5), top[1].ViewCount)
	assert.Equal(t, []int64{ids[2], ids[0]}, articleIDs(top))
}

func TestVotePoll_ConcurrentVotesAreNotLost(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	poll, err := s.CreatePoll(ctx, domain.Poll{
		Question: "Ki domèn ki bezwen plis envèstisman?",
		Options:  []string{"A", "B"},
		Active:   true,
		Language: domain.LanguageCreole,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 0, "B": 0}, poll.Results)

	const voters = 200
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.VotePoll(ctx, poll.ID, "A")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.GetPoll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(voters), got.Results["A"])
	assert.Equal(t, int64(0), got.Results["B"])
}

func TestVotePoll_RejectsUnknownOption(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	poll, err := s.CreatePoll(ctx, domain.Poll{Question: "Question?", Options: []string{"A", "B"}, Language: domain.LanguageCreole})
	require.NoError(t, err)

	_, err = s.VotePoll(ctx, poll.ID, "C")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.VotePoll(ctx, 999, "A")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := s.GetPoll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 0, "B": 0}, got.Results)
}

func TestUpdatePoll_KeepsResultsInvariant(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	poll, err := s.CreatePoll(ctx, domain.Poll{Question: "Question?", Options: []string{"A", "B"}, Language: domain.LanguageCreole})
	require.NoError(t, err)
	_, err = s.VotePoll(ctx, poll.ID, "A")
	require.NoError(t, err)
	_, err = s.VotePoll(ctx, poll.ID, "B")
	require.NoError(t, err)

	active := false
	closed, err := s.UpdatePoll(ctx, poll.ID, domain.PollPatch{Active: &active})
	require.NoError(t, err)
	assert.False(t, closed.Active)
	assert.Equal(t, map[string]int64{"A": 1, "B": 1}, closed.Results)

	reshaped, err := s.UpdatePoll(ctx, poll.ID, domain.PollPatch{Options: []string{"A", "C"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 1, "C": 0}, reshaped.Results)
}

func TestGetPoll_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	poll, err := s.CreatePoll(ctx, domain.Poll{Question: "Question?", Options: []string{"A", "B"}, Language: domain.LanguageCreole})
	require.NoError(t, err)

	poll.Results["A"] = 100
	got, err := s.GetPoll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Results["A"])
}

func TestCreateUser_UniqueUsername(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	_, err := s.CreateUser(ctx, domain.User{Username: "admin", Password: "hash", IsAdmin: true})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, domain.User{Username: "admin", Password: "hash"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	u, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	news, err := s.CreateCategory(ctx, domain.Category{Name: "news", Label: "Nouvèl", Language: domain.LanguageCreole})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, domain.Category{Name: "news", Label: "Nouvèl", Language: domain.LanguageCreole})
	assert.ErrorIs(t, err, storage.ErrConflict)
	_, err = s.CreateCategory(ctx, domain.Category{Name: "news", Label: "News", Language: domain.LanguageEnglish})
	require.NoError(t, err)

	sub, err := s.CreateSubcategory(ctx, domain.Subcategory{CategoryID: news.ID, Name: "local", Label: "Lokal"})
	require.NoError(t, err)
	_, err = s.CreateSubcategory(ctx, domain.Subcategory{CategoryID: 999, Name: "x", Label: "x"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := s.ListCategories(ctx, domain.LanguageCreole)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Subcategories, 1)
	assert.Equal(t, sub.ID, list[0].Subcategories[0].ID)

	removed, err := s.DeleteCategory(ctx, news.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteSubcategory(ctx, sub.ID)
	require.NoError(t, err)
	assert.False(t, removed, "subcategories go away with their parent")
}

func articleIDs(articles []domain.Article) []int64 {
	ids := make([]int64, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	return ids
}
