// Package auth resolves who is calling the API and whether they may
// administer content.
package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Identity struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// Provider extracts the caller's identity from a request. It returns nil and
// no error for anonymous requests.
type Provider interface {
	Identify(r *http.Request) (*Identity, error)
}

var ErrInvalidCredentials = errors.New("invalid username or password")

const identityKey = "auth.identity"

func SetIdentity(c echo.Context, id *Identity) {
	c.Set(identityKey, id)
}

// FromContext returns the identity stored by the Authenticate middleware.
func FromContext(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(identityKey).(*Identity)
	return id, ok && id != nil
}

// ChainProvider asks each provider in order and returns the first identity found.
type ChainProvider []Provider

func (p ChainProvider) Identify(r *http.Request) (*Identity, error) {
	for _, provider := range p {
		id, err := provider.Identify(r)
		if err != nil {
			return nil, err
		}
		if id != nil {
			return id, nil
		}
	}
	return nil, nil
}
