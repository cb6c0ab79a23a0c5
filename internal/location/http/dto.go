package http

import (
	"time"

	"github.com/nekogravitycat/locker-access-backend/internal/location"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/request"
)

type CreateLocationBody struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// ListLocationsRequest defines query parameters for listing locations.
type ListLocationsRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}

type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationTag is a brief representation of a location.
type LocationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewLocationResponse(l *location.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
	}
}
