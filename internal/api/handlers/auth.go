package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/devrahulm/vidtube-server/internal/api/middleware"
	"github.com/devrahulm/vidtube-server/internal/services"
	"github.com/devrahulm/vidtube-server/internal/utils"
)

// POST /api/v1/users/register
// Multipart form: username, email, fullName, password, avatar (file,
// required), coverImage (file, optional).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid multipart form",
		})
		return
	}

	avatar, closeAvatar, err := formFileUpload(r, "avatar")
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid avatar file",
		})
		return
	}
	if closeAvatar != nil {
		defer closeAvatar()
	}

	cover, closeCover, err := formFileUpload(r, "coverImage")
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid cover image file",
		})
		return
	}
	if closeCover != nil {
		defer closeCover()
	}

	user, err := h.sessions.Register(r.Context(), services.RegisterInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
		Avatar:   avatar,
		Cover:    cover,
	})
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// POST /api/v1/users/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	identifier := input.Username
	if identifier == "" {
		identifier = input.Email
	}

	user, pair, err := h.sessions.Login(r.Context(), identifier, input.Password)
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data: map[string]any{
			"user":         user,
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		},
	})
}

// POST /api/v1/users/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}

	if err := h.sessions.Logout(r.Context(), userID); err != nil {
		utils.JSONError(w, err)
		return
	}

	h.clearSessionCookies(w)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

// POST /api/v1/users/refresh
// The refresh token is read from the refreshToken cookie, falling back to
// the request body.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	presented := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		presented = cookie.Value
	} else {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err == nil {
			presented = input.RefreshToken
		}
	}

	pair, err := h.sessions.Refresh(r.Context(), presented)
	if err != nil {
		utils.JSONError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Tokens refreshed",
		Data:    pair,
	})
}
