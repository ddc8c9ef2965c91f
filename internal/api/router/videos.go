package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/dto"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/labstack/echo/v4"
)

type VideoRouter struct {
	api   *echo.Group
	admin *echo.Group
	store storage.VideoStore
}

func NewVideoRouter(api, admin *echo.Group, store storage.VideoStore) *VideoRouter {
	return &VideoRouter{api: api, admin: admin, store: store}
}

func (r *VideoRouter) Bind() {
	r.api.GET("/videos", r.list)
	r.api.GET("/videos/:id", r.get)

	r.admin.POST("/videos", r.create)
	r.admin.PUT("/videos/:id", r.update)
	r.admin.DELETE("/videos/:id", r.delete)
}

// list godoc
// @Summary List videos of a language
// @Tags videos
// @Produce json
// @Param language query string false "Language code, defaults to ht"
// @Param category query string false "Category"
// @Success 200 {array} domain.Video
// @Router /api/videos [get]
func (r *VideoRouter) list(c echo.Context) error {
	lang, err := queryLanguage(c, domain.DefaultLanguage)
	if err != nil {
		return err
	}

	videos, err := r.store.ListVideos(c.Request().Context(), domain.VideoFilter{
		Language: lang,
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to list videos", err)
	}
	return c.JSON(http.StatusOK, videos)
}

// get godoc
// @Summary Get a video
// @Tags videos
// @Produce json
// @Param id path int true "Video id"
// @Success 200 {object} domain.Video
// @Failure 404 {object} apperr.Response
// @Router /api/videos/{id} [get]
func (r *VideoRouter) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	video, err := r.store.GetVideo(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "video", id)
	}
	return c.JSON(http.StatusOK, video)
}

// create godoc
// @Summary Create a video
// @Tags admin
// @Accept json
// @Produce json
// @Param video body dto.CreateVideoRequest true "Video"
// @Success 201 {object} domain.Video
// @Failure 400 {object} apperr.Response
// @Router /api/admin/videos [post]
func (r *VideoRouter) create(c echo.Context) error {
	var req dto.CreateVideoRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	video, err := r.store.CreateVideo(c.Request().Context(), req.ToDomain())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create video", err)
	}
	return c.JSON(http.StatusCreated, video)
}

// update godoc
// @Summary Partially update a video
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Video id"
// @Param video body dto.UpdateVideoRequest true "Fields to change"
// @Success 200 {object} domain.Video
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /api/admin/videos/{id} [put]
func (r *VideoRouter) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateVideoRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return emptyPatch()
	}

	video, err := r.store.UpdateVideo(c.Request().Context(), id, patch)
	if err != nil {
		return storeError(err, "video", id)
	}
	return c.JSON(http.StatusOK, video)
}

// delete godoc
// @Summary Delete a video
// @Tags admin
// @Param id path int true "Video id"
// @Success 204
// @Failure 404 {object} apperr.Response
// @Router /api/admin/videos/{id} [delete]
func (r *VideoRouter) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := r.store.DeleteVideo(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "video", id)
	}
	if !deleted {
		return apperr.NewNotFound("video %d not found", id)
	}
	return c.NoContent(http.StatusNoContent)
}
