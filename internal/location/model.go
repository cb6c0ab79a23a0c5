package location

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("location not found")
	ErrEmptyName = errors.New("name cannot be empty")
)

// Location represents a physical site where lockers are installed.
type Location struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}

// Filter defines parameters for listing locations.
type Filter struct {
	Keyword  string // Search in Name or Address
	Page     int
	PageSize int
}
