package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locker-access-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrLockerNotFound   = apperror.New(http.StatusNotFound, "locker not found")
	ErrLockerInactive   = apperror.New(http.StatusConflict, "locker is not available")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking grants one user time-bounded rights over a locker.
// Lifecycle and payment status are driven by the upstream booking/payment
// flow; the access authorizer only ever reads a snapshot.
type Booking struct {
	ID            string
	LockerID      string
	LockerName    string
	LocationID    string
	LocationName  string
	UserID        string
	UserName      string
	PaymentStatus PaymentStatus
	Status        Status
	StartTime     time.Time
	EndTime       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Filter struct {
	UserID   string
	LockerID string
	Status   string
	Page     int
	PageSize int
}
