package router

import (
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/dto"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/labstack/echo/v4"
)

type CategoryRouter struct {
	admin *echo.Group
	store storage.CategoryStore
}

func NewCategoryRouter(admin *echo.Group, store storage.CategoryStore) *CategoryRouter {
	return &CategoryRouter{admin: admin, store: store}
}

func (r *CategoryRouter) Bind() {
	r.admin.GET("/categories", r.list)
	r.admin.POST("/categories", r.create)
	r.admin.DELETE("/categories/:id", r.delete)

	r.admin.POST("/subcategories", r.createSubcategory)
	r.admin.DELETE("/subcategories/:id", r.deleteSubcategory)
}

// list godoc
// @Summary Category taxonomy of a language
// @Tags admin
// @Produce json
// @Param language query string false "Language code, defaults to ht"
// @Success 200 {array} domain.Category
// @Router /api/admin/categories [get]
func (r *CategoryRouter) list(c echo.Context) error {
	lang, err := queryLanguage(c, domain.DefaultLanguage)
	if err != nil {
		return err
	}

	categories, err := r.store.ListCategories(c.Request().Context(), lang)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to list categories", err)
	}
	return c.JSON(http.StatusOK, categories)
}

// create godoc
// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} apperr.Response
// @Failure 409 {object} apperr.Response
// @Router /api/admin/categories [post]
func (r *CategoryRouter) create(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := r.store.CreateCategory(c.Request().Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return apperr.NewConflict("category %q already exists for language %s", req.Name, req.Language)
		}
		return apperr.Wrap(apperr.Internal, "failed to create category", err)
	}
	return c.JSON(http.StatusCreated, category)
}

// delete godoc
// @Summary Delete a category and its subcategories
// @Tags admin
// @Param id path int true "Category id"
// @Success 204
// @Failure 404 {object} apperr.Response
// @Router /api/admin/categories/{id} [delete]
func (r *CategoryRouter) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := r.store.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "category", id)
	}
	if !deleted {
		return apperr.NewNotFound("category %d not found", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// createSubcategory godoc
// @Summary Create a subcategory
// @Tags admin
// @Accept json
// @Produce json
// @Param subcategory body dto.CreateSubcategoryRequest true "Subcategory"
// @Success 201 {object} domain.Subcategory
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /api/admin/subcategories [post]
func (r *CategoryRouter) createSubcategory(c echo.Context) error {
	var req dto.CreateSubcategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sub, err := r.store.CreateSubcategory(c.Request().Context(), req.ToDomain())
	if err != nil {
		return storeError(err, "category", req.CategoryID)
	}
	return c.JSON(http.StatusCreated, sub)
}

// deleteSubcategory godoc
// @Summary Delete a subcategory
// @Tags admin
// @Param id path int true "Subcategory id"
// @Success 204
// @Failure 404 {object} apperr.Response
// @Router /api/admin/subcategories/{id} [delete]
func (r *CategoryRouter) deleteSubcategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := r.store.DeleteSubcategory(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "subcategory", id)
	}
	if !deleted {
		return apperr.NewNotFound("subcategory %d not found", id)
	}
	return c.NoContent(http.StatusNoContent)
}
