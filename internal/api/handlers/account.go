package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/devrahulm/vidtube-server/internal/api/middleware"
	"github.com/devrahulm/vidtube-server/internal/services"
	"github.com/devrahulm/vidtube-server/internal/utils"
)

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
	}
	return userID, ok
}

// GET /api/v1/users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.sessions.CurrentUser(r.Context(), userID)
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Current user fetched",
		Data:    user,
	})
}

// POST /api/v1/users/change-password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if err := h.sessions.ChangePassword(r.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		utils.JSONError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Password changed successfully",
	})
}

// PATCH /api/v1/users/update-account
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
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

	var input struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	user, err := h.sessions.UpdateAccount(r.Context(), userID, input.FullName, input.Email)
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Account updated successfully",
		Data:    user,
	})
}

// PATCH /api/v1/users/avatar
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateAsset(w, r, "avatar", func(req *http.Request, userID uuid.UUID, upload *services.AssetUpload) (any, error) {
		return h.sessions.UpdateAvatar(req.Context(), userID, upload)
	})
}

// PATCH /api/v1/users/cover-image
func (h *Handler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateAsset(w, r, "coverImage", func(req *http.Request, userID uuid.UUID, upload *services.AssetUpload) (any, error) {
		return h.sessions.UpdateCoverImage(req.Context(), userID, upload)
	})
}

func (h *Handler) updateAsset(w http.ResponseWriter, r *http.Request, field string, update func(*http.Request, uuid.UUID, *services.AssetUpload) (any, error)) {
	if r.Method != http.MethodPatch {
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

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid multipart form",
		})
		return
	}

	upload, closeUpload, err := formFileUpload(r, field)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid file",
		})
		return
	}
	if closeUpload != nil {
		defer closeUpload()
	}

	user, err := update(r, userID, upload)
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Image updated successfully",
		Data:    user,
	})
}
