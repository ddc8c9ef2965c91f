package router

import (
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/validation"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/auth"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/voting"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Store    storage.Store
	Engine   *voting.Engine
	Auth     *auth.Service
	Sessions *auth.SessionProvider
	Tokens   *auth.TokenProvider
}

// Bind mounts every route under /api. Everything below /api/admin requires
// an administrator identity.
func Bind(e *echo.Echo, deps Deps) {
	e.Validator = validation.New()

	identity := auth.ChainProvider{deps.Sessions, deps.Tokens}
	api := e.Group("/api", auth.Authenticate(identity))
	admin := api.Group("/admin", auth.RequireAdmin())

	NewArticleRouter(api, admin, deps.Store).Bind()
	NewPollRouter(api, admin, deps.Store, deps.Engine).Bind()
	NewVideoRouter(api, admin, deps.Store).Bind()
	NewStatsRouter(api, deps.Store).Bind()
	NewCategoryRouter(admin, deps.Store).Bind()
	NewAuthRouter(api, deps.Auth, deps.Sessions, deps.Tokens).Bind()
}
