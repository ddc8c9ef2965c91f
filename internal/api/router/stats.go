package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/labstack/echo/v4"
)

type StatsRouter struct {
	api   *echo.Group
	store storage.ArticleStore
}

func NewStatsRouter(api *echo.Group, store storage.ArticleStore) *StatsRouter {
	return &StatsRouter{api: api, store: store}
}

func (r *StatsRouter) Bind() {
	r.api.GET("/stats/popular-articles", r.popularArticles)
	r.api.GET("/stats/categories", r.categories)
}

// popularArticles godoc
// @Summary Most viewed articles
// @Tags stats
// @Produce json
// @Param language query string false "Language code, defaults to ht"
// @Param limit query int false "Result size, 1-50, defaults to 5"
// @Success 200 {array} domain.Article
// @Failure 400 {object} apperr.Response
// @Router /api/stats/popular-articles [get]
func (r *StatsRouter) popularArticles(c echo.Context) error {
	lang, err := queryLanguage(c, domain.DefaultLanguage)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	articles, err := r.store.MostViewedArticles(c.Request().Context(), lang, limit)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to load popular articles", err)
	}
	return c.JSON(http.StatusOK, articles)
}

// categories godoc
// @Summary Article count per category
// @Tags stats
// @Produce json
// @Param language query string false "Language code, defaults to ht"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} apperr.Response
// @Router /api/stats/categories [get]
func (r *StatsRouter) categories(c echo.Context) error {
	lang, err := queryLanguage(c, domain.DefaultLanguage)
	if err != nil {
		return err
	}

	counts, err := r.store.CategoryCounts(c.Request().Context(), lang)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to count categories", err)
	}
	return c.JSON(http.StatusOK, counts)
}
