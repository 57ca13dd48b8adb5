package api

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"

	"github.com/devrahulm/vidtube-server/internal/api/handlers"
	"github.com/devrahulm/vidtube-server/internal/api/middleware"
	"github.com/devrahulm/vidtube-server/internal/config"
	"github.com/devrahulm/vidtube-server/internal/logger"
	"github.com/devrahulm/vidtube-server/internal/services"
)

// SetupRouter wires handlers, auth middleware and CORS into one http.Handler.
func SetupRouter(h *handlers.Handler, tokens *services.TokenService, cfg *config.Config) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(cfg.CorsConfig)

	auth := middleware.Auth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	// ---------- USER ROUTES ----------
	userMux := http.NewServeMux()
	userMux.HandleFunc("/register", h.Register)
	userMux.HandleFunc("/login", h.Login)
	userMux.HandleFunc("/refresh", h.Refresh)
	userMux.Handle("/logout", auth(http.HandlerFunc(h.Logout)))
	userMux.Handle("/me", auth(http.HandlerFunc(h.Me)))
	userMux.Handle("/change-password", auth(http.HandlerFunc(h.ChangePassword)))
	userMux.Handle("/update-account", auth(http.HandlerFunc(h.UpdateAccount)))
	userMux.Handle("/avatar", auth(http.HandlerFunc(h.UpdateAvatar)))
	userMux.Handle("/cover-image", auth(http.HandlerFunc(h.UpdateCoverImage)))

	mainMux.Handle("/api/v1/users/",
		http.StripPrefix("/api/v1/users", userMux),
	)

	// ---------- CHANNEL ROUTES ----------
	channelMux := http.NewServeMux()
	channelMux.Handle("/{username}", optionalAuth(http.HandlerFunc(h.GetChannelProfile)))
	channelMux.Handle("/{username}/subscribe", auth(http.HandlerFunc(h.ToggleSubscription)))

	mainMux.Handle("/api/v1/channels/",
		http.StripPrefix("/api/v1/channels", channelMux),
	)

	logger.Info("router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
