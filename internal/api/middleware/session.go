package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/everest-shop/internal/i18n"
	"github.com/example/everest-shop/internal/session"
)

const CookieName = "everest_session"

// RespondError writes a JSON error response.
func RespondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ExtractToken reads the session token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type contextKey string

const SessionContextKey contextKey = "session"

// Session resolves the visitor's view state. A missing, expired or unknown
// token starts a new session in the language negotiated from
// Accept-Language, and a fresh cookie is set. A token past half its
// lifetime is re-issued so an active visitor keeps their session.
func Session(manager *session.Manager, tokens *session.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, refresh := lookup(manager, tokens, r)
			if state == nil {
				state = manager.Create(r.Context(), i18n.Negotiate(r.Header.Get("Accept-Language")))
				refresh = true
			}
			if refresh {
				if err := setToken(w, tokens, state.ID()); err != nil {
					logrus.WithError(err).WithField("component", "api").Error("issue session token")
					RespondError(w, "could not start session", http.StatusInternalServerError)
					return
				}
			}

			if entry, ok := r.Context().Value(LoggerContextKey).(*logrus.Entry); ok {
				*entry = *entry.WithField("session_id", state.ID())
			}
			ctx := context.WithValue(r.Context(), SessionContextKey, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setToken(w http.ResponseWriter, tokens *session.Tokens, sessionID string) error {
	signed, expiresAt, err := tokens.Issue(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("X-Session-Token", signed)
	return nil
}

// lookup returns the live session named by the request token, if any, and
// whether its token is due for re-issue.
func lookup(manager *session.Manager, tokens *session.Tokens, r *http.Request) (*session.State, bool) {
	token := ExtractToken(r)
	if token == "" {
		return nil, false
	}
	claims, err := tokens.ParseClaims(token)
	if err != nil {
		return nil, false
	}
	state, err := manager.Get(claims.SessionID)
	if err != nil {
		return nil, false
	}
	return state, tokens.Stale(claims)
}

// GetSession returns the view state attached by Session.
func GetSession(ctx context.Context) (*session.State, bool) {
	state, ok := ctx.Value(SessionContextKey).(*session.State)
	return state, ok
}
