package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/devrahulm/vidtube-server/internal/api/middleware"
	"github.com/devrahulm/vidtube-server/internal/utils"
)

// GET /api/v1/channels/{username}
// Anonymous viewers get isSubscribed=false; authenticated viewers get their
// own subscription state.
func (h *Handler) GetChannelProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	username := r.PathValue("username")

	var viewerID *uuid.UUID
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		viewerID = &userID
	}

	profile, err := h.channels.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Channel profile fetched",
		Data:    profile,
	})
}

// POST /api/v1/channels/{username}/subscribe
func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	subscribed, err := h.channels.ToggleSubscription(r.Context(), userID, r.PathValue("username"))
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	message := "Unsubscribed"
	if subscribed {
		message = "Subscribed"
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: message,
		Data:    map[string]bool{"subscribed": subscribed},
	})
}
