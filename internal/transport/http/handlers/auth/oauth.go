package authhandler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"ems/internal/domain/identity"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

const (
	oauthStateCookie = "oauth_state"
	userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

func (h *Handler) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.Cfg.GoogleClientID,
		ClientSecret: h.Cfg.GoogleClientSecret,
		RedirectURL:  h.Cfg.GoogleCallbackURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func (h *Handler) handleGoogleStart(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "oauth_error", "failed to start sign-in", middleware.GetRequestID(r.Context()))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.Cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.oauthConfig().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

type googleUserinfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func (h *Handler) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		api.Fail(w, http.StatusBadRequest, "oauth_state_mismatch", "sign-in state did not match", reqID)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	code := r.URL.Query().Get("code")
	if code == "" {
		api.Fail(w, http.StatusBadRequest, "oauth_error", "missing authorization code", reqID)
		return
	}

	conf := h.oauthConfig()
	token, err := conf.Exchange(r.Context(), code)
	if err != nil {
		slog.Warn("oauth code exchange failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusUnauthorized, "oauth_error", "sign-in could not be completed", reqID)
		return
	}

	info, err := fetchUserinfo(r, conf, token)
	if err != nil {
		slog.Warn("oauth userinfo fetch failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusUnauthorized, "oauth_error", "sign-in could not be completed", reqID)
		return
	}
	if info.ID == "" || info.Email == "" {
		api.Fail(w, http.StatusUnauthorized, "oauth_error", "sign-in could not be completed", reqID)
		return
	}

	user, err := h.Users.LoginWithGoogle(r.Context(), identity.GoogleProfile{
		Subject:   info.ID,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "oauth_error", serverMessage(h.Cfg, err, "sign-in could not be completed"), reqID)
		return
	}

	sessionToken, err := h.issueToken(user)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", reqID)
		return
	}
	setAuthCookie(w, sessionToken, h.Cfg.TokenTTL, h.Cfg.Production())
	http.Redirect(w, r, h.Cfg.FrontendURL, http.StatusTemporaryRedirect)
}

func fetchUserinfo(r *http.Request, conf *oauth2.Config, token *oauth2.Token) (*googleUserinfo, error) {
	resp, err := conf.Client(r.Context(), token).Get(userinfoEndpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
