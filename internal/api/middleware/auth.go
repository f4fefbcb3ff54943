package middleware

import (
	"context"
	"errors"
	"net/http"

	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"
	"kambaz_api/internal/common/security"
	"kambaz_api/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	SessionTokenCtxKey contextKey = "sessionToken"
	SessionUserCtxKey  contextKey = "sessionUser"
)

// sessionToken is what the cookie yielded: a verified registry token, or a
// cookie that was present but failed verification.
type sessionToken struct {
	value   string
	invalid bool
}

// SessionLoader reads the cookie that jwtauth.Verify checked earlier in the
// chain and stores the session token in the request context. It never
// rejects a request.
func SessionLoader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		var st sessionToken
		switch {
		case errors.Is(err, jwtauth.ErrNoTokenFound):
			// No cookie at all.
		case err != nil || token == nil:
			st.invalid = true
		default:
			sid, err := security.GetSessionIDFromClaims(claims)
			if err != nil {
				st.invalid = true
			} else {
				st.value = sid
			}
		}

		ctx := context.WithValue(r.Context(), SessionTokenCtxKey, st)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionAuthenticator rejects requests without a live session and puts the
// session user in the context.
func SessionAuthenticator(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := ResolveSession(r, authService)
			if err != nil {
				common.RespondWithFailure(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), SessionUserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResolveSession maps the request's session cookie to its user. A cookie
// that failed verification counts as an expired session.
func ResolveSession(r *http.Request, authService *service.AuthService) (model.SessionUser, error) {
	st, _ := r.Context().Value(SessionTokenCtxKey).(sessionToken)
	if st.invalid {
		return model.SessionUser{}, common.ErrSessionExpired
	}
	return authService.ResolveSession(r.Context(), st.value)
}

// Helper to get the verified session token from context
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	st, ok := ctx.Value(SessionTokenCtxKey).(sessionToken)
	return st.value, ok && st.value != ""
}

// Helper to get the session user from context
func GetSessionUserFromContext(ctx context.Context) (model.SessionUser, bool) {
	user, ok := ctx.Value(SessionUserCtxKey).(model.SessionUser)
	return user, ok
}
