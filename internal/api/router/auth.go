package router

import (
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/dto"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/auth"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	api      *echo.Group
	service  *auth.Service
	sessions *auth.SessionProvider
	tokens   *auth.TokenProvider
}

func NewAuthRouter(api *echo.Group, service *auth.Service, sessions *auth.SessionProvider, tokens *auth.TokenProvider) *AuthRouter {
	return &AuthRouter{api: api, service: service, sessions: sessions, tokens: tokens}
}

func (r *AuthRouter) Bind() {
	r.api.POST("/register", r.register)
	r.api.POST("/login", r.login)
	r.api.POST("/logout", r.logout)
	r.api.GET("/user", r.user)
}

// register godoc
// @Summary Create a reader account
// @Tags auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Credentials"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperr.Response
// @Failure 409 {object} apperr.Response
// @Router /api/register [post]
func (r *AuthRouter) register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := r.service.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return apperr.NewConflict("username %q is already taken", req.Username)
		}
		return apperr.Wrap(apperr.Internal, "failed to register", err)
	}

	if err := r.sessions.Login(c.Response(), c.Request(), user); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to start session", err)
	}
	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// login godoc
// @Summary Log in with username and password
// @Description Sets the session cookie and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperr.Response
// @Router /api/login [post]
func (r *AuthRouter) login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := r.service.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return apperr.NewUnauthorized(auth.ErrInvalidCredentials.Error())
		}
		return apperr.Wrap(apperr.Internal, "failed to log in", err)
	}

	if err := r.sessions.Login(c.Response(), c.Request(), user); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to start session", err)
	}
	token, err := r.tokens.Issue(user)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to issue token", err)
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		UserResponse: dto.NewUserResponse(user),
		Token:        token,
	})
}

// logout godoc
// @Summary End the session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /api/logout [post]
func (r *AuthRouter) logout(c echo.Context) error {
	if err := r.sessions.Logout(c.Response(), c.Request()); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to end session", err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// user godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperr.Response
// @Router /api/user [get]
func (r *AuthRouter) user(c echo.Context) error {
	id, ok := auth.FromContext(c)
	if !ok {
		return apperr.NewUnauthorized("not logged in")
	}
	return c.JSON(http.StatusOK, dto.UserResponse{
		ID:       id.UserID,
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
	})
}
