package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/http/middleware"
	"github.com/voyagehub/travel-bookings/internal/http/response"
	"github.com/voyagehub/travel-bookings/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	resp, err := h.auth.Signup(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	user, err := h.auth.Profile(r.Context(), identity.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
