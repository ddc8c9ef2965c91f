package auth

import (
	"net/http"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/gorilla/sessions"
)

const (
	SessionName   = "nouvel_session"
	sessionUserID = "uid"
)

type SessionConfig struct {
	Secret string
	MaxAge int
	Secure bool
}

// SessionProvider keeps the user id in a signed cookie.
type SessionProvider struct {
	store *sessions.CookieStore
	users storage.UserStore
}

func NewSessionProvider(cfg SessionConfig, users storage.UserStore) *SessionProvider {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = 3600 * 24 * 7
	}
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionProvider{store: store, users: users}
}

func (p *SessionProvider) Identify(r *http.Request) (*Identity, error) {
	session, err := p.store.Get(r, SessionName)
	if err != nil {
		// a cookie signed with another secret is treated as anonymous
		return nil, nil
	}
	uid, ok := session.Values[sessionUserID].(int64)
	if !ok {
		return nil, nil
	}
	return lookup(r.Context(), p.users, uid)
}

func (p *SessionProvider) Login(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	session, _ := p.store.Get(r, SessionName)
	session.Values[sessionUserID] = user.ID
	return session.Save(r, w)
}

func (p *SessionProvider) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := p.store.Get(r, SessionName)
	delete(session.Values, sessionUserID)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
