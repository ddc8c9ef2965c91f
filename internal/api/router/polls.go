package router

import (
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/dto"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/voting"
	"github.com/labstack/echo/v4"
)

type PollRouter struct {
	api    *echo.Group
	admin  *echo.Group
	store  storage.PollStore
	engine *voting.Engine
}

func NewPollRouter(api, admin *echo.Group, store storage.PollStore, engine *voting.Engine) *PollRouter {
	return &PollRouter{api: api, admin: admin, store: store, engine: engine}
}

func (r *PollRouter) Bind() {
	r.api.GET("/polls", r.list)
	r.api.GET("/polls/:id", r.get)
	r.api.GET("/polls/:id/results", r.results)
	r.api.POST("/polls/vote", r.vote)

	r.admin.POST("/polls", r.create)
	r.admin.PUT("/polls/:id", r.update)
	r.admin.DELETE("/polls/:id", r.delete)
}

// list godoc
// @Summary List polls of a language
// @Tags polls
// @Produce json
// @Param language query string false "Language code, defaults to ht"
// @Success 200 {array} domain.Poll
// @Failure 400 {object} apperr.Response
// @Router /api/polls [get]
func (r *PollRouter) list(c echo.Context) error {
	lang, err := queryLanguage(c, domain.DefaultLanguage)
	if err != nil {
		return err
	}

	polls, err := r.store.ListPolls(c.Request().Context(), domain.PollFilter{Language: lang})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to list polls", err)
	}
	return c.JSON(http.StatusOK, polls)
}

// get godoc
// @Summary Get a poll
// @Tags polls
// @Produce json
// @Param id path int true "Poll id"
// @Success 200 {object} domain.Poll
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /api/polls/{id} [get]
func (r *PollRouter) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	poll, err := r.store.GetPoll(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "poll", id)
	}
	return c.JSON(http.StatusOK, poll)
}

// results godoc
// @Summary Vote tallies with percentages
// @Tags polls
// @Produce json
// @Param id path int true "Poll id"
// @Success 200 {object} domain.PollResults
// @Failure 404 {object} apperr.Response
// @Router /api/polls/{id}/results [get]
func (r *PollRouter) results(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := r.engine.Results(c.Request().Context(), id)
	if err != nil {
		return voteError(err, id, "")
	}
	return c.JSON(http.StatusOK, res)
}

// vote godoc
// @Summary Cast one vote
// @Tags polls
// @Accept json
// @Produce json
// @Param vote body dto.VoteRequest true "Ballot"
// @Success 200 {object} domain.Poll
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Failure 409 {object} apperr.Response
// @Router /api/polls/vote [post]
func (r *PollRouter) vote(c echo.Context) error {
	var req dto.VoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	poll, err := r.engine.Vote(c.Request().Context(), req.PollID, req.Option)
	if err != nil {
		return voteError(err, req.PollID, req.Option)
	}
	return c.JSON(http.StatusOK, poll)
}

func voteError(err error, id int64, option string) error {
	switch {
	case errors.Is(err, voting.ErrPollNotFound):
		return apperr.NewNotFound("poll %d not found", id)
	case errors.Is(err, voting.ErrUnknownOption):
		return apperr.NewNotFound("option %q not found in poll %d", option, id)
	case errors.Is(err, voting.ErrPollClosed):
		return apperr.NewConflict("poll %d is closed", id)
	default:
		return apperr.Wrap(apperr.Internal, "failed to record vote", err)
	}
}

// create godoc
// @Summary Create a poll
// @Tags admin
// @Accept json
// @Produce json
// @Param poll body dto.CreatePollRequest true "Poll"
// @Success 201 {object} domain.Poll
// @Failure 400 {object} apperr.Response
// @Router /api/admin/polls [post]
func (r *PollRouter) create(c echo.Context) error {
	var req dto.CreatePollRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	poll, err := r.store.CreatePoll(c.Request().Context(), req.ToDomain())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create poll", err)
	}
	return c.JSON(http.StatusCreated, poll)
}

// update godoc
// @Summary Partially update a poll
// @Description Replacing options keeps the tallies of surviving options.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Poll id"
// @Param poll body dto.UpdatePollRequest true "Fields to change"
// @Success 200 {object} domain.Poll
// @Failure 400 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /api/admin/polls/{id} [put]
func (r *PollRouter) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePollRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return emptyPatch()
	}

	poll, err := r.store.UpdatePoll(c.Request().Context(), id, patch)
	if err != nil {
		return storeError(err, "poll", id)
	}
	return c.JSON(http.StatusOK, poll)
}

// delete godoc
// @Summary Delete a poll
// @Tags admin
// @Param id path int true "Poll id"
// @Success 204
// @Failure 404 {object} apperr.Response
// @Router /api/admin/polls/{id} [delete]
func (r *PollRouter) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := r.store.DeletePoll(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "poll", id)
	}
	if !deleted {
		return apperr.NewNotFound("poll %d not found", id)
	}
	return c.NoContent(http.StatusNoContent)
}
