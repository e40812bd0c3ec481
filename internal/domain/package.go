package domain

import (
	"fmt"
	"time"
)

const DefaultPackageImage = "/placeholder.jpg"

type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Package is a purchasable travel itinerary. Packages are never hard
// deleted; deactivation hides them from the catalog while bookings that
// reference them stay resolvable.
type Package struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Destination  string         `json:"destination"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	Duration     string         `json:"duration"`
	Image        string         `json:"image"`
	Included     []string       `json:"included"`
	Itinerary    []ItineraryDay `json:"itinerary"`
	IsActive     bool           `json:"is_active"`
	CreatedBy    int64          `json:"created_by"`
	CreatorEmail string         `json:"creator_email,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type CreatePackageRequest struct {
	Title       string         `json:"title"`
	Destination string         `json:"destination"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Duration    string         `json:"duration"`
	Image       string         `json:"image,omitempty"`
	Included    []string       `json:"included,omitempty"`
	Itinerary   []ItineraryDay `json:"itinerary,omitempty"`
}

type UpdatePackageRequest struct {
	Title       *string         `json:"title,omitempty"`
	Destination *string         `json:"destination,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       *float64        `json:"price,omitempty"`
	Duration    *string         `json:"duration,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Included    *[]string       `json:"included,omitempty"`
	Itinerary   *[]ItineraryDay `json:"itinerary,omitempty"`
}

func (r *CreatePackageRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if r.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if r.Duration == "" {
		return fmt.Errorf("%w: duration is required", ErrValidation)
	}
	for _, day := range r.Itinerary {
		if day.Day < 1 {
			return fmt.Errorf("%w: itinerary day must be positive", ErrValidation)
		}
	}
	return nil
}

func (r *UpdatePackageRequest) Validate() error {
	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if r.Itinerary != nil {
		for _, day := range *r.Itinerary {
			if day.Day < 1 {
				return fmt.Errorf("%w: itinerary day must be positive", ErrValidation)
			}
		}
	}
	return nil
}

func (r *CreatePackageRequest) Normalize() {
	if r.Image == "" {
		r.Image = DefaultPackageImage
	}
	if r.Included == nil {
		r.Included = []string{}
	}
	if r.Itinerary == nil {
		r.Itinerary = []ItineraryDay{}
	}
}
