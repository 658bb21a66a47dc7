package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/auth"
	"ems/internal/config"
	"ems/internal/domain/identity"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Handler struct {
	Users *identity.Service
	Cfg   config.Config
}

func NewHandler(users *identity.Service, cfg config.Config) *Handler {
	return &Handler{Users: users, Cfg: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.With(middleware.RequireAuth).Get("/me", h.handleMe)
		if h.Cfg.GoogleEnabled() {
			r.Get("/google", h.handleGoogleStart)
			r.Get("/google/callback", h.handleGoogleCallback)
		}
	})
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	v.Required("password", payload.Password, "password is required")
	v.MinLen("password", payload.Password, 8, "password must be at least 8 characters")
	v.Required("firstName", payload.FirstName, "firstName is required")
	v.Required("lastName", payload.LastName, "lastName is required")

	role := payload.Role
	if role != "" {
		parsed, ok := auth.ParseRole(role)
		if !ok {
			v.Add("role", "must be one of admin, hr, employee")
		} else {
			role = parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	// Only admins may grant elevated roles; anonymous signups become employees.
	if role != "" && role != auth.RoleEmployee {
		actor, ok := middleware.GetUser(r.Context())
		if !ok || !auth.Authorize(actor.Role, auth.RoleAdmin) {
			role = auth.RoleEmployee
		}
	}

	user, err := h.Users.Register(r.Context(), identity.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Role:      role,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			api.Fail(w, http.StatusBadRequest, "email_taken", "an account with this email already exists", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "register_failed", serverMessage(h.Cfg, err, "failed to register user"), reqID)
		return
	}

	h.issueSession(w, r, user)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	user, err := h.Users.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", serverMessage(h.Cfg, err, "failed to log in"), reqID)
		return
	}

	h.issueSession(w, r, user)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w, h.Cfg.Production())
	api.SuccessWithMessage(w, "logged out", nil, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	actor, _ := middleware.GetUser(r.Context())
	user, err := h.Users.GetByID(r.Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "account no longer exists", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "me_failed", serverMessage(h.Cfg, err, "failed to load account"), reqID)
		return
	}

	api.Success(w, user, reqID)
}

// issueSession writes the session cookie and returns the token in the body
// for clients that prefer the Authorization header.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, user *identity.User) {
	reqID := middleware.GetRequestID(r.Context())

	token, err := h.issueToken(user)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", reqID)
		return
	}

	setAuthCookie(w, token, h.Cfg.TokenTTL, h.Cfg.Production())
	api.Success(w, map[string]any{
		"token": token,
		"user":  user,
	}, reqID)
}

func (h *Handler) issueToken(user *identity.User) (string, error) {
	return auth.GenerateToken(h.Cfg.JWTSecret, auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, h.Cfg.TokenTTL)
}

func setAuthCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func serverMessage(cfg config.Config, err error, fallback string) string {
	if cfg.Production() {
		return fallback
	}
	return err.Error()
}
