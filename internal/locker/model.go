package locker

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("locker not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidLocation = errors.New("invalid location_id")
)

// Locker represents a single physical storage unit at a location.
type Locker struct {
	ID           string
	LocationID   string
	LocationName string
	Name         string
	Size         string // e.g. "small", "medium", "large"
	IsActive     bool
	CreatedAt    time.Time
}

// Filter defines parameters for listing lockers.
type Filter struct {
	LocationID string
	IsActive   *bool
	Page       int
	PageSize   int
}
