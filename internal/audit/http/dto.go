package http

import (
	"time"

	"github.com/nekogravitycat/locker-access-backend/internal/audit"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/request"
)

// ListEntriesRequest defines query parameters for listing audit entries.
type ListEntriesRequest struct {
	request.ListParams
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Action string `form:"action" binding:"omitempty,oneof=open open.denied"`
}

type EntryResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	LockerID  string         `json:"locker_id,omitempty"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewEntryResponse(e *audit.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    string(e.Action),
		LockerID:  e.LockerID,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}
