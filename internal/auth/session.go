package auth

import (
	"context"
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"kycboard/internal/models"
)

const sessionName = "kycboard-session"

// UserLoader resolves a session's stored user id back to a full user row.
type UserLoader interface {
	GetUserByID(id string) (models.User, error)
}

type contextKey string

// userKey is the context key under which the authenticated user is stored.
const userKey = contextKey("currentUser")

// SessionManager owns the cookie store and translates between browser
// sessions and authenticated users.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager builds a cookie store from the configured secret.
// Separate signing and encryption keys are derived from it.
func NewSessionManager(secret string) *SessionManager {
	authKey := sha256.Sum256([]byte(secret + "auth"))
	encKey := sha256.Sum256([]byte(secret + "encryption"))

	store := sessions.NewCookieStore(authKey[:], encKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store}
}

// SignIn establishes an authenticated session for the given user.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, user models.User) {
	session, _ := m.store.Get(r, sessionName)
	session.Values["userID"] = user.ID
	session.Save(r, w)
}

// SignOut tears the session down unconditionally.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := m.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

// Flash queues a one-shot notice shown on the next page read.
func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := m.store.Get(r, sessionName)
	session.AddFlash(message)
	session.Save(r, w)
}

// TakeFlashes returns and clears all queued notices.
func (m *SessionManager) TakeFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := m.store.Get(r, sessionName)
	raw := session.Flashes()
	session.Save(r, w)

	notices := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			notices = append(notices, s)
		}
	}
	return notices
}

// Middleware resolves the session to a user row and stores it in the request
// context. Requests without a valid session pass through unauthenticated;
// gating is left to RequireLogin/RequireAdmin.
func (m *SessionManager) Middleware(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := m.store.Get(r, sessionName)
			id, ok := session.Values["userID"].(string)
			if !ok || id == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(id)
			if err != nil {
				// Stale cookie referencing a user that no longer resolves.
				log.Warn().Err(err).Str("user_id", id).Msg("Session references unknown user")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user stored by Middleware, if any.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// RequireLogin redirects unauthenticated requests to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects authenticated non-admins with an explicit 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !user.IsAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
