package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/auth"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/voting"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const longContent = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod."

type testAPI struct {
	t          *testing.T
	e          *echo.Echo
	store      *in_mem.InMemStorer
	adminToken string
	userToken  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := in_mem.NewInMemStorer()
	service := auth.NewService(store, auth.NewHasher(bcrypt.MinCost))
	sessions := auth.NewSessionProvider(auth.SessionConfig{Secret: "0123456789abcdef0123456789abcdef"}, store)
	tokens := auth.NewTokenProvider("test-secret", time.Hour, store)

	ctx := context.Background()
	require.NoError(t, service.EnsureAdmin(ctx, "admin", "admin123"))
	admin, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	reader, err := service.Register(ctx, "reader", "reader123")
	require.NoError(t, err)

	adminToken, err := tokens.Issue(admin)
	require.NoError(t, err)
	userToken, err := tokens.Issue(reader)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	Bind(e, Deps{
		Store:    store,
		Engine:   voting.NewEngine(store, voting.RejectClosed),
		Auth:     service,
		Sessions: sessions,
		Tokens:   tokens,
	})

	return &testAPI{t: t, e: e, store: store, adminToken: adminToken, userToken: userToken}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var payload *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		payload = strings.NewReader(string(raw))
	} else {
		payload = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (a *testAPI) createArticle(title, category string, lang domain.Language) domain.Article {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/admin/articles", a.adminToken, map[string]any{
		"title":    title,
		"content":  longContent,
		"excerpt":  "A short excerpt",
		"category": category,
		"author":   "Redaksyon",
		"language": lang,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[domain.Article](a.t, rec)
}

func TestArticles_ReadIncrementsViews(t *testing.T) {
	api := newTestAPI(t)
	first := api.createArticle("Premye atik", "news", domain.LanguageCreole)
	other := api.createArticle("Dezyèm atik", "news", domain.LanguageCreole)

	for want := int64(1); want <= 3; want++ {
		rec := api.do(http.MethodGet, "/api/articles/"+itoa(first.ID), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, decode[domain.Article](t, rec).ViewCount)

		api.do(http.MethodGet, "/api/articles/"+itoa(other.ID), "", nil)
	}
}

func TestArticles_List(t *testing.T) {
	api := newTestAPI(t)
	api.createArticle("Atik politik", "politics", domain.LanguageCreole)
	api.createArticle("Atik nouvèl", "news", domain.LanguageCreole)
	api.createArticle("Article news", "news", domain.LanguageFrench)

	rec := api.do(http.MethodGet, "/api/articles?language=ht&category=news", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.Article](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Atik nouvèl", list[0].Title)

	rec = api.do(http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Article](t, rec), 3)

	rec = api.do(http.MethodGet, "/api/articles?language=de", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArticles_PartialUpdate(t *testing.T) {
	api := newTestAPI(t)
	created := api.createArticle("Tit orijinal", "news", domain.LanguageCreole)

	rec := api.do(http.MethodPut, "/api/admin/articles/"+itoa(created.ID), api.adminToken, map[string]any{
		"title": "New title",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[domain.Article](t, rec)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Excerpt, updated.Excerpt)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.Author, updated.Author)
	assert.Equal(t, created.Language, updated.Language)

	rec = api.do(http.MethodPut, "/api/admin/articles/"+itoa(created.ID), api.adminToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, "/api/admin/articles/999", api.adminToken, map[string]any{"title": "Missing one"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticles_DeleteThenRead(t *testing.T) {
	api := newTestAPI(t)
	created := api.createArticle("Pou efase", "news", domain.LanguageCreole)
	path := "/api/admin/articles/" + itoa(created.ID)

	rec := api.do(http.MethodDelete, path, api.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, path, api.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/articles/"+itoa(created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"article `+itoa(created.ID)+` not found"}`, rec.Body.String())
}

func TestArticles_InvalidIdentifier(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/articles/abc", "/api/polls/1x", "/api/videos/-3"} {
		rec := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}

	rec := api.do(http.MethodDelete, "/api/admin/articles/abc", api.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArticles_Validation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/admin/articles", api.adminToken, map[string]any{
		"title":      "Abc",
		"content":    "too short",
		"excerpt":    "short",
		"coverImage": "not-a-url",
		"category":   "news",
		"author":     "Redaksyon",
		"language":   "ht",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[apperr.Response](t, rec)
	assert.Equal(t, "validation failed", body.Message)
	fields := make([]string, 0, len(body.Errors))
	for _, f := range body.Errors {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "content", "excerpt", "coverImage"}, fields)

	rec = api.do(http.MethodPost, "/api/admin/articles", api.adminToken, map[string]any{"title": 42})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	list, err := api.store.ListArticles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAdminGate(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{name: "anonymous", token: "", want: http.StatusUnauthorized},
		{name: "reader", token: api.userToken, want: http.StatusForbidden},
		{name: "garbage token", token: "not-a-jwt", want: http.StatusUnauthorized},
		{name: "admin", token: api.adminToken, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodGet, "/api/admin/categories", tt.token, nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := api.do(http.MethodPost, "/api/admin/polls", api.userToken, map[string]any{
		"question": "Ki koulè?",
		"options":  []string{"Wouj", "Ble"},
		"language": "ht",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	polls, err := api.store.ListPolls(context.Background(), domain.PollFilter{})
	require.NoError(t, err)
	assert.Empty(t, polls)
}

func TestPolls_VoteFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/admin/polls", api.adminToken, map[string]any{
		"question": "Ki koulè ou pi renmen?",
		"options":  []string{"Wouj", "Ble"},
		"language": "ht",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	poll := decode[domain.Poll](t, rec)
	assert.True(t, poll.Active)
	assert.Equal(t, map[string]int64{"Wouj": 0, "Ble": 0}, poll.Results)

	for i := 0; i < 3; i++ {
		rec = api.do(http.MethodPost, "/api/polls/vote", "", map[string]any{"pollId": poll.ID, "option": "Wouj"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, int64(3), decode[domain.Poll](t, rec).Results["Wouj"])

	rec = api.do(http.MethodPost, "/api/polls/vote", "", map[string]any{"pollId": poll.ID, "option": "Vèt"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/polls/vote", "", map[string]any{"pollId": 999, "option": "Wouj"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/polls/vote", "", map[string]any{"option": "Wouj"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/polls/"+itoa(poll.ID)+"/results", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[domain.PollResults](t, rec)
	assert.Equal(t, int64(3), results.TotalVotes)
	assert.Equal(t, []domain.OptionResult{
		{Option: "Wouj", Votes: 3, Percentage: 100},
		{Option: "Ble", Votes: 0, Percentage: 0},
	}, results.Options)

	rec = api.do(http.MethodPut, "/api/admin/polls/"+itoa(poll.ID), api.adminToken, map[string]any{"active": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/api/polls/vote", "", map[string]any{"pollId": poll.ID, "option": "Ble"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/polls", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Poll](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/polls?language=fr", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Poll](t, rec))
}

func TestPolls_CreateValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/admin/polls", api.adminToken, map[string]any{
		"question": "Ki koulè?",
		"options":  []string{"Wouj"},
		"language": "ht",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/admin/polls", api.adminToken, map[string]any{
		"question": "Ki koulè?",
		"options":  []string{"Wouj", "Wouj"},
		"language": "ht",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMistypedFields(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name      string
		path      string
		token     string
		body      map[string]any
		wantField string
		wantMsg   string
	}{
		{
			name:  "article title as number",
			path:  "/api/admin/articles",
			token: api.adminToken,
			body: map[string]any{
				"title": 12345, "content": longContent, "excerpt": "A short excerpt",
				"category": "news", "author": "Redaksyon", "language": "ht",
			},
			wantField: "title",
			wantMsg:   "must be a string",
		},
		{
			name:      "poll options as string",
			path:      "/api/admin/polls",
			token:     api.adminToken,
			body:      map[string]any{"question": "Ki koulè?", "options": "A,B", "language": "ht"},
			wantField: "options",
			wantMsg:   "must be an array",
		},
		{
			name:      "vote poll id as string",
			path:      "/api/polls/vote",
			body:      map[string]any{"pollId": "1", "option": "A"},
			wantField: "pollId",
			wantMsg:   "must be an integer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, tt.path, tt.token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[apperr.Response](t, rec)
			assert.Equal(t, "validation failed", body.Message)
			require.Len(t, body.Errors, 1)
			assert.Equal(t, tt.wantField, body.Errors[0].Field)
			assert.Equal(t, tt.wantMsg, body.Errors[0].Message)
		})
	}

	t.Run("malformed json keeps the generic message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/polls/vote", strings.NewReader(`{"pollId":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		api.e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[apperr.Response](t, rec)
		assert.Equal(t, "invalid request body", body.Message)
		assert.Empty(t, body.Errors)
	})

	list, err := api.store.ListArticles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVideos_CRUD(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/admin/videos", api.adminToken, map[string]any{
		"title":        "Rapò espesyal",
		"thumbnailUrl": "https://cdn.example.ht/thumb.jpg",
		"videoUrl":     "https://cdn.example.ht/video.mp4",
		"duration":     "12:30",
		"language":     "ht",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	video := decode[domain.Video](t, rec)

	rec = api.do(http.MethodPut, "/api/admin/videos/"+itoa(video.ID), api.adminToken, map[string]any{"duration": "13:00"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[domain.Video](t, rec)
	assert.Equal(t, "13:00", updated.Duration)
	assert.Equal(t, video.Title, updated.Title)

	rec = api.do(http.MethodGet, "/api/videos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Video](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/videos/"+itoa(video.ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodDelete, "/api/admin/videos/"+itoa(video.ID), api.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/videos/"+itoa(video.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	api.createArticle("Nouvèl yon", "news", domain.LanguageCreole)
	api.createArticle("Nouvèl de", "news", domain.LanguageCreole)
	api.createArticle("Politik yon", "politics", domain.LanguageCreole)
	api.createArticle("Politique un", "politics", domain.LanguageFrench)

	rec := api.do(http.MethodGet, "/api/stats/categories?language=ht", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int64{"news": 2, "politics": 1}, decode[map[string]int64](t, rec))

	views := []int64{5, 1, 9, 3}
	for i, v := range views {
		a := api.createArticle("Atik fr "+itoa(int64(i)), "news", domain.LanguageFrench)
		for j := int64(0); j < v; j++ {
			require.NoError(t, api.store.IncrementArticleViews(ctx, a.ID))
		}
	}

	rec = api.do(http.MethodGet, "/api/stats/popular-articles?language=fr&limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	top := decode[[]domain.Article](t, rec)
	require.Len(t, top, 2)
	assert.Equal(t, int64(9), top[0].ViewCount)
	assert.Equal(t, int64(5), top[1].ViewCount)

	rec = api.do(http.MethodGet, "/api/stats/popular-articles?language=fr&limit=500", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Article](t, rec), 5)

	rec = api.do(http.MethodGet, "/api/stats/popular-articles?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategories(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/admin/categories", api.adminToken, map[string]any{
		"name": "sport", "label": "Espò", "language": "ht",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[domain.Category](t, rec)

	rec = api.do(http.MethodPost, "/api/admin/categories", api.adminToken, map[string]any{
		"name": "sport", "label": "Espò", "language": "ht",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/admin/subcategories", api.adminToken, map[string]any{
		"categoryId": category.ID, "name": "foutbol", "label": "Foutbòl",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPost, "/api/admin/subcategories", api.adminToken, map[string]any{
		"categoryId": 999, "name": "bezbòl", "label": "Bezbòl",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/admin/categories", api.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.Category](t, rec)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Subcategories, 1)

	rec = api.do(http.MethodDelete, "/api/admin/categories/"+itoa(category.ID), api.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/api/admin/subcategories/"+itoa(list[0].Subcategories[0].ID), api.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/register", "", map[string]any{"username": "jo", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/register", "", map[string]any{"username": "reader", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/login", "", map[string]any{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/login", "", map[string]any{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	login := decode[map[string]any](t, rec)
	assert.Equal(t, true, login["isAdmin"])
	assert.NotEmpty(t, login["token"])

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	api.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"admin","isAdmin":true}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
