package handler

import (
	"log"
	"net/http"

	"kambaz_api/internal/api/middleware"
	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"
	"kambaz_api/internal/common/security"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	cookie      *security.SessionCookie
}

func NewAuthHandler(authService *service.AuthService, cookie *security.SessionCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// RegisterRoutes mounts signin, signup, profile and signout. They must be
// registered on the users router ahead of /{userId}.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signin", h.signin)
	r.Post("/signup", h.signup)
	r.With(middleware.SessionAuthenticator(h.authService)).Get("/profile", h.profile)
	r.Post("/signout", h.signout)
}

func (h *AuthHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req service.SignInRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithFailure(w, err)
		return
	}

	res, err := h.authService.SignIn(r.Context(), req)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	if err := h.cookie.Set(w, res.Token); err != nil {
		log.Printf("ERROR: Failed to sign session cookie for user %s: %v", res.User.ID(), err)
		h.authService.SignOut(r.Context(), res.Token)
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, res.User)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}

	res, err := h.authService.SignUp(r.Context(), fields)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	if err := h.cookie.Set(w, res.Token); err != nil {
		log.Printf("ERROR: Failed to sign session cookie for user %s: %v", res.User.ID(), err)
		h.authService.SignOut(r.Context(), res.Token)
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, res.User)
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetSessionUserFromContext(r.Context())
	if !ok {
		common.RespondWithFailure(w, common.ErrNotAuthenticated)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) signout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.GetSessionTokenFromContext(r.Context()); ok {
		h.authService.SignOut(r.Context(), token)
	}
	h.cookie.Clear(w)
	common.RespondWithMessage(w, http.StatusOK, "Signed out successfully")
}
