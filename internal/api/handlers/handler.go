package handlers

import (
	"net/http"
	"time"

	"github.com/devrahulm/vidtube-server/internal/config"
	"github.com/devrahulm/vidtube-server/internal/services"
)

// Handler bundles the services the HTTP layer dispatches into. All routes
// are methods on it; nothing here touches package-level state.
type Handler struct {
	sessions *services.SessionService
	channels *services.ChannelService
	cfg      *config.Config
}

func New(sessions *services.SessionService, channels *services.ChannelService, cfg *config.Config) *Handler {
	return &Handler{sessions: sessions, channels: channels, cfg: cfg}
}

func (h *Handler) sameSite() http.SameSite {
	// Cross-site frontends need SameSite=None; local development keeps Lax.
	if h.cfg.Environment == "production" {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// setSessionCookies attaches both tokens as http-only cookies. Lifetimes
// mirror the token expiries.
func (h *Handler) setSessionCookies(w http.ResponseWriter, pair *services.TokenPair) {
	h.setCookie(w, "accessToken", pair.AccessToken, h.cfg.Tokens.AccessExpiry)
	h.setCookie(w, "refreshToken", pair.RefreshToken, h.cfg.Tokens.RefreshExpiry)
}

// clearSessionCookies deletes both token cookies.
func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	h.setCookie(w, "accessToken", "", -time.Second)
	h.setCookie(w, "refreshToken", "", -time.Second)
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   h.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: h.sameSite(),
	})
}
