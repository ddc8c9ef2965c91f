package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/dto"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/labstack/echo/v4"
)

type ArticleRouter struct {
	api   *echo.Group
	admin *echo.Group
	store storage.ArticleStore
}

func NewArticleRouter(api, admin *echo.Group, store storage.ArticleStore) *ArticleRouter {
	return &ArticleRouter{api: api, admin: admin, store: store}
}

func (r *ArticleRouter) Bind() {
	r.api.GET("/articles", r.list)
	r.api.GET("/articles/:id", r.get)

	r.admin.POST("/articles", r.create)
	r.admin.PUT("/articles/:id", r.update)
	r.admin.DELETE("/articles/:id", r.delete)
}

// list godoc
// @Summary List articles
// @Tags articles
// @Produce json
// @Param language query string false "Language code (ht, fr, en)"
// @Param category query string false "Category"
// @Success 200 {array} domain.Article
// @Failure 400 {object} apperr.Response
// @Router /api/articles [get]
func (r *ArticleRouter) list(c echo.Context) error {
	lang, err := queryLanguage(c, "")
	if err != nil {
		return err
	}

	articles, err := r.store.ListArticles(c.Request().Context(), domain.ArticleFilter{
		Language: lang,
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to list articles", err)
	}
	return c.JSON(http.StatusOK, articles)
}

// get godoc
// @Summary Get an article and count the view
// @Tags articles
// @Produce json
// @Param id path int true "Article id"
// @Success 200 {object} domain.Article
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /api/articles/{id} [get]
func (r *ArticleRouter) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if err := r.store.IncrementArticleViews(ctx, id); err != nil {
		return storeError(err, "article", id)
	}
	article, err := r.store.GetArticle(ctx, id)
	if err != nil {
		return storeError(err, "article", id)
	}
	return c.JSON(http.StatusOK, article)
}

// create godoc
// @Summary Create an article
// @Tags admin
// @Accept json
// @Produce json
// @Param article body dto.CreateArticleRequest true "Article"
// @Success 201 {object} domain.Article
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 403 {object} apperr.Response
// @Router /api/admin/articles [post]
func (r *ArticleRouter) create(c echo.Context) error {
	var req dto.CreateArticleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	article, err := r.store.CreateArticle(c.Request().Context(), req.ToDomain())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create article", err)
	}
	return c.JSON(http.StatusCreated, article)
}

// update godoc
// @Summary Partially update an article
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Article id"
// @Param article body dto.UpdateArticleRequest true "Fields to change"
// @Success 200 {object} domain.Article
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /api/admin/articles/{id} [put]
func (r *ArticleRouter) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateArticleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return emptyPatch()
	}

	article, err := r.store.UpdateArticle(c.Request().Context(), id, patch)
	if err != nil {
		return storeError(err, "article", id)
	}
	return c.JSON(http.StatusOK, article)
}

// delete godoc
// @Summary Delete an article
// @Tags admin
// @Param id path int true "Article id"
// @Success 204
// @Failure 404 {object} apperr.Response
// @Router /api/admin/articles/{id} [delete]
func (r *ArticleRouter) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := r.store.DeleteArticle(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "article", id)
	}
	if !deleted {
		return apperr.NewNotFound("article %d not found", id)
	}
	return c.NoContent(http.StatusNoContent)
}
