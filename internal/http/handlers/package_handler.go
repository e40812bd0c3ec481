package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/http/middleware"
	"github.com/voyagehub/travel-bookings/internal/http/response"
	"github.com/voyagehub/travel-bookings/internal/service"
)

type PackageHandler struct {
	packages service.PackageService
}

func NewPackageHandler(packages service.PackageService) *PackageHandler {
	return &PackageHandler{packages: packages}
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.packages.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	if packages == nil {
		packages = []domain.Package{}
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"packages": packages})
}

func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid package ID")
		return
	}

	pkg, err := h.packages.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"package": pkg})
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	var req domain.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	pkg, err := h.packages.Create(r.Context(), identity, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Package created successfully",
		"package": pkg,
	})
}

func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid package ID")
		return
	}

	var req domain.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	pkg, err := h.packages.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Package updated successfully",
		"package": pkg,
	})
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid package ID")
		return
	}

	if err := h.packages.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Package deleted successfully",
	})
}
