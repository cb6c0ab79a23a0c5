package audit

import (
	"errors"
	"time"
)

var ErrInvalidAction = errors.New("invalid audit action")

// Action identifies what was done to the target resource.
type Action string

const (
	// ActionOpen records a granted open. An ActionOpen entry exists only if,
	// at the moment it was written, the booking was owned by the actor, paid,
	// confirmed, and the request time fell inside the reservation window.
	ActionOpen Action = "open"

	// ActionOpenDenied records a rejected open attempt. Only written when
	// denied-attempt auditing is enabled in config.
	ActionOpenDenied Action = "open.denied"
)

// Entry is an immutable record of an access decision. Entries are only ever
// inserted and listed, never updated or deleted.
type Entry struct {
	ID        string
	UserID    string
	Action    Action
	LockerID  string
	Metadata  map[string]any
	CreatedAt time.Time
}

// Filter defines parameters for listing audit entries.
type Filter struct {
	UserID   string
	Action   string
	Page     int
	PageSize int
}
