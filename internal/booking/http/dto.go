package http

import (
	"time"

	"github.com/nekogravitycat/locker-access-backend/internal/booking"
	locHttp "github.com/nekogravitycat/locker-access-backend/internal/location/http"
	lockerHttp "github.com/nekogravitycat/locker-access-backend/internal/locker/http"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/request"
	userHttp "github.com/nekogravitycat/locker-access-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	LockerID string `form:"locker_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	Locker        lockerHttp.LockerTag `json:"locker"`
	Location      locHttp.LocationTag  `json:"location"`
	User          userHttp.UserTag     `json:"user"`
	PaymentStatus string               `json:"payment_status"`
	Status        string               `json:"status"`
	StartTime     time.Time            `json:"start_time"`
	EndTime       time.Time            `json:"end_time"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Locker:        lockerHttp.LockerTag{ID: b.LockerID, Name: b.LockerName},
		Location:      locHttp.LocationTag{ID: b.LocationID, Name: b.LocationName},
		User:          userHttp.UserTag{ID: b.UserID, Name: b.UserName},
		PaymentStatus: string(b.PaymentStatus),
		Status:        string(b.Status),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type CreateBookingBody struct {
	LockerID  string    `json:"locker_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingBody.
func (r *CreateBookingBody) Validate() error {
	if r.StartTime.After(r.EndTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}
