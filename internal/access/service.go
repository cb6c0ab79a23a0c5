package access

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/nekogravitycat/locker-access-backend/internal/actuation"
	"github.com/nekogravitycat/locker-access-backend/internal/audit"
	"github.com/nekogravitycat/locker-access-backend/internal/booking"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/apperror"
)

var (
	ErrUnauthenticated = apperror.New(http.StatusUnauthorized, "unauthorized")

	// ErrBookingNotFound covers a booking that is absent, owned by someone
	// else, unpaid or not confirmed. The four cases are deliberately
	// indistinguishable so probing cannot enumerate booking state.
	ErrBookingNotFound = apperror.New(http.StatusNotFound, "booking not found")

	// ErrBookingNotActive means the request time fell outside the
	// reservation window.
	ErrBookingNotActive = apperror.New(http.StatusForbidden, "booking is not active")
)

// Denial reasons recorded when denied-attempt auditing is enabled. Coarse on
// purpose: the audit trail must not be more revealing than the response.
const (
	reasonNotFound  = "booking_not_found"
	reasonNotActive = "booking_not_active"
)

// Result describes a granted open.
type Result struct {
	BookingID    string
	LockerID     string
	LockerName   string
	LocationName string
}

// Service decides whether an authenticated user may open the locker tied to
// a booking. Each call is independent and stateless: concurrent calls for
// the same booking may all succeed.
type Service interface {
	// AuthorizeOpen runs the full validation sequence for one open attempt.
	// requestTime is the injected evaluation instant; both window endpoints
	// are inclusive. It returns a Result or exactly one typed denial, never
	// a partial grant.
	AuthorizeOpen(ctx context.Context, userID, bookingID string, requestTime time.Time) (*Result, error)
}

type service struct {
	bookingService booking.Service
	auditService   audit.Service
	channel        actuation.Channel

	auditDenied bool
}

// NewService creates the access authorizer. auditDenied controls whether
// rejected attempts are written to the audit trail as well.
func NewService(bookingService booking.Service, auditService audit.Service, channel actuation.Channel, auditDenied bool) Service {
	return &service{
		bookingService: bookingService,
		auditService:   auditService,
		channel:        channel,
		auditDenied:    auditDenied,
	}
}

func (s *service) AuthorizeOpen(ctx context.Context, userID, bookingID string, requestTime time.Time) (*Result, error) {
	// 1. Identity is established by the transport middleware. An empty
	// userID means the caller never authenticated.
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	// 2. Load the booking scoped to owner + paid + confirmed in a single
	// read. A miss is reported the same way no matter which filter failed.
	b, err := s.bookingService.FindOpenable(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, s.deny(ctx, userID, bookingID, nil, reasonNotFound, ErrBookingNotFound)
		}
		return nil, err
	}

	// 3. Validate the reservation window, endpoints inclusive.
	if requestTime.Before(b.StartTime) || requestTime.After(b.EndTime) {
		return nil, s.deny(ctx, userID, bookingID, b, reasonNotActive, ErrBookingNotActive)
	}

	// 4. Record the grant. The decision stands even if the write fails;
	// losing one trail entry is preferable to locking a paying user out.
	entry := &audit.Entry{
		UserID:   userID,
		Action:   audit.ActionOpen,
		LockerID: b.LockerID,
		Metadata: map[string]any{
			"booking_id":    b.ID,
			"locker_name":   b.LockerName,
			"location_name": b.LocationName,
		},
	}
	if err := s.auditService.Record(ctx, entry); err != nil {
		log.Printf("access: audit write failed for booking %s: %v", b.ID, err)
	}

	// 5. Signal the hardware. Fire-and-forget; the locker id always comes
	// from the booking row, never from configuration.
	s.channel.SignalOpen(ctx, b.LockerID)

	return &Result{
		BookingID:    b.ID,
		LockerID:     b.LockerID,
		LockerName:   b.LockerName,
		LocationName: b.LocationName,
	}, nil
}

// deny optionally records the rejected attempt, then returns kind unchanged.
// The trail write is best-effort just like the grant path.
func (s *service) deny(ctx context.Context, userID, bookingID string, b *booking.Booking, reason string, kind error) error {
	if !s.auditDenied {
		return kind
	}

	entry := &audit.Entry{
		UserID: userID,
		Action: audit.ActionOpenDenied,
		Metadata: map[string]any{
			"booking_id": bookingID,
			"reason":     reason,
		},
	}
	if b != nil {
		entry.LockerID = b.LockerID
		entry.Metadata["locker_name"] = b.LockerName
		entry.Metadata["location_name"] = b.LocationName
	}
	if err := s.auditService.Record(ctx, entry); err != nil {
		log.Printf("access: denied-attempt audit write failed for booking %s: %v", bookingID, err)
	}

	return kind
}
