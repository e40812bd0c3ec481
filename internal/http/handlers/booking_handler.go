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

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	booking, err := h.bookings.Create(r.Context(), identity, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// MyBookings lists the authenticated user's own bookings, newest first.
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	bookings, err := h.bookings.ListForUser(r.Context(), identity.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListAll(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid booking ID")
		return
	}

	var req domain.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	booking, err := h.bookings.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Booking status updated successfully",
		"booking": booking,
	})
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		response.Unauthorized(w, "no token provided")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid booking ID")
		return
	}

	booking, err := h.bookings.Cancel(r.Context(), id, identity)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Booking cancelled successfully",
		"booking": booking,
	})
}
