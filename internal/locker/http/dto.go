package http

import (
	"time"

	locHttp "github.com/nekogravitycat/locker-access-backend/internal/location/http"
	"github.com/nekogravitycat/locker-access-backend/internal/locker"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/request"
)

type CreateLockerBody struct {
	LocationID string `json:"location_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required"`
	Size       string `json:"size" binding:"omitempty,oneof=small medium large"`
}

// ListLockersRequest defines query parameters for listing lockers.
type ListLockersRequest struct {
	request.ListParams
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	IsActive   *bool  `form:"is_active"`
}

type LockerResponse struct {
	ID        string              `json:"id"`
	Location  locHttp.LocationTag `json:"location"`
	Name      string              `json:"name"`
	Size      string              `json:"size"`
	IsActive  bool                `json:"is_active"`
	CreatedAt time.Time           `json:"created_at"`
}

// LockerTag is a brief representation of a locker.
type LockerTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewLockerResponse(l *locker.Locker) LockerResponse {
	return LockerResponse{
		ID:        l.ID,
		Location:  locHttp.LocationTag{ID: l.LocationID, Name: l.LocationName},
		Name:      l.Name,
		Size:      l.Size,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
	}
}
