package access

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/locker-access-backend/internal/audit"
	"github.com/nekogravitycat/locker-access-backend/internal/booking"
)

// fakeBookingService serves bookings from memory and applies the same
// owner/paid/confirmed scoping as the SQL predicate.
type fakeBookingService struct {
	bookings map[string]*booking.Booking
}

func (f *fakeBookingService) FindOpenable(_ context.Context, id, userID string) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok ||
		b.UserID != userID ||
		b.PaymentStatus != booking.PaymentPaid ||
		b.Status != booking.StatusConfirmed {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingService) Create(context.Context, booking.CreateRequest) (*booking.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) GetByID(context.Context, string) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}

func (f *fakeBookingService) List(context.Context, booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

// recordingAuditService collects entries, optionally failing every write.
type recordingAuditService struct {
	mu      sync.Mutex
	entries []*audit.Entry
	failErr error
}

func (r *recordingAuditService) Record(_ context.Context, e *audit.Entry) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingAuditService) List(context.Context, audit.Filter) ([]*audit.Entry, int, error) {
	return r.entries, len(r.entries), nil
}

func (r *recordingAuditService) byAction(action audit.Action) []*audit.Entry {
	var out []*audit.Entry
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type recordingChannel struct {
	mu      sync.Mutex
	signals []string
}

func (r *recordingChannel) SignalOpen(_ context.Context, lockerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, lockerID)
}

const (
	userU1 = "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1"
	userU2 = "9d3c2b9a-2da5-4f3a-a6c9-547c2a2f11b2"
)

// validBooking is B1: owned by U1, paid, confirmed, window Mon 09:00-17:00.
func validBooking() *booking.Booking {
	return &booking.Booking{
		ID:            "b7f0c3d8-3a52-4b8f-8f93-2d6a1c6a0e11",
		LockerID:      "1fd9a40f-13c1-44bb-9c03-8f2bb1f4a701",
		LockerName:    "Locker 12",
		LocationID:    "4c1f3a2b-90e2-4b6d-bb9c-77b0e02a9f55",
		LocationName:  "Central Station",
		UserID:        userU1,
		PaymentStatus: booking.PaymentPaid,
		Status:        booking.StatusConfirmed,
		StartTime:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),  // Mon 09:00
		EndTime:       time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), // Mon 17:00
	}
}

func newAuthorizer(b *booking.Booking, auditDenied bool) (Service, *recordingAuditService, *recordingChannel) {
	bookings := map[string]*booking.Booking{}
	if b != nil {
		bookings[b.ID] = b
	}
	audits := &recordingAuditService{}
	channel := &recordingChannel{}
	svc := NewService(&fakeBookingService{bookings: bookings}, audits, channel, auditDenied)
	return svc, audits, channel
}

func TestAuthorizeOpenGrantsInsideWindow(t *testing.T) {
	b := validBooking()
	svc, audits, channel := newAuthorizer(b, false)

	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // Mon 12:00
	res, err := svc.AuthorizeOpen(context.Background(), userU1, b.ID, at)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, b.ID, res.BookingID)
	assert.Equal(t, b.LockerID, res.LockerID)
	assert.Equal(t, "Locker 12", res.LockerName)

	// Exactly one audit entry, carrying the booking context.
	require.Len(t, audits.entries, 1)
	entry := audits.entries[0]
	assert.Equal(t, audit.ActionOpen, entry.Action)
	assert.Equal(t, userU1, entry.UserID)
	assert.Equal(t, b.LockerID, entry.LockerID)
	assert.Equal(t, b.ID, entry.Metadata["booking_id"])
	assert.Equal(t, "Locker 12", entry.Metadata["locker_name"])
	assert.Equal(t, "Central Station", entry.Metadata["location_name"])

	// The signal is keyed by the booking's locker, not configuration.
	assert.Equal(t, []string{b.LockerID}, channel.signals)
}

func TestAuthorizeOpenWindowBoundariesAreInclusive(t *testing.T) {
	b := validBooking()

	for name, at := range map[string]time.Time{
		"at start": b.StartTime,
		"at end":   b.EndTime,
	} {
		t.Run(name, func(t *testing.T) {
			svc, audits, _ := newAuthorizer(validBooking(), false)
			res, err := svc.AuthorizeOpen(context.Background(), userU1, b.ID, at)
			require.NoError(t, err)
			assert.Equal(t, b.ID, res.BookingID)
			assert.Len(t, audits.entries, 1)
		})
	}
}

func TestAuthorizeOpenDeniesOutsideWindow(t *testing.T) {
	b := validBooking()

	for name, at := range map[string]time.Time{
		"before start": time.Date(2026, 3, 2, 8, 59, 0, 0, time.UTC), // Mon 08:59
		"after end":    time.Date(2026, 3, 2, 17, 1, 0, 0, time.UTC), // Mon 17:01
	} {
		t.Run(name, func(t *testing.T) {
			svc, audits, channel := newAuthorizer(validBooking(), false)
			res, err := svc.AuthorizeOpen(context.Background(), userU1, b.ID, at)
			assert.ErrorIs(t, err, ErrBookingNotActive)
			assert.Nil(t, res)
			assert.Empty(t, audits.entries)
			assert.Empty(t, channel.signals)
		})
	}
}

func TestAuthorizeOpenDeniesForeignBooking(t *testing.T) {
	// The booking itself is fully valid; only the caller differs. The
	// result must be identical to a missing booking.
	b := validBooking()
	svc, audits, channel := newAuthorizer(b, false)

	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	res, err := svc.AuthorizeOpen(context.Background(), userU2, b.ID, at)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, res)
	assert.Empty(t, audits.entries)
	assert.Empty(t, channel.signals)
}

func TestAuthorizeOpenDeniesUnpaidOrUnconfirmed(t *testing.T) {
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	cases := map[string]func(*booking.Booking){
		"unpaid":    func(b *booking.Booking) { b.PaymentStatus = booking.PaymentUnpaid },
		"refunded":  func(b *booking.Booking) { b.PaymentStatus = booking.PaymentRefunded },
		"pending":   func(b *booking.Booking) { b.Status = booking.StatusPending },
		"cancelled": func(b *booking.Booking) { b.Status = booking.StatusCancelled },
		"completed": func(b *booking.Booking) { b.Status = booking.StatusCompleted },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			b := validBooking()
			mutate(b)
			svc, audits, _ := newAuthorizer(b, false)

			res, err := svc.AuthorizeOpen(context.Background(), userU1, b.ID, at)
			assert.ErrorIs(t, err, ErrBookingNotFound)
			assert.Nil(t, res)
			assert.Empty(t, audits.entries)
		})
	}
}

func TestAuthorizeOpenDeniesUnknownBooking(t *testing.T) {
	svc, audits, _ := newAuthorizer(nil, false)

	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	res, err := svc.AuthorizeOpen(context.Background(), userU1, "e2a4a7cc-6f60-4b2c-9e3f-16f6157a1d10", at)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, res)
	assert.Empty(t, audits.entries)
}

func TestAuthorizeOpenDeniesMissingIdentity(t *testing.T) {
	b := validBooking()
	svc, audits, channel := newAuthorizer(b, false)

	res, err := svc.AuthorizeOpen(context.Background(), "", b.ID, b.StartTime)

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, res)
	assert.Empty(t, audits.entries)
	assert.Empty(t, channel.signals)
}

func TestAuthorizeOpenSurvivesAuditWriteFailure(t *testing.T) {
	b := validBooking()
	svc, audits, channel := newAuthorizer(b, false)
	audits.failErr = errors.New("audit store unavailable")

	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	res, err := svc.AuthorizeOpen(context.Background(), userU1, b.ID, at)

	// The decision already stands; a lost trail entry must not flip it.
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, b.ID, res.BookingID)
	assert.Equal(t, []string{b.LockerID}, channel.signals)
}

func TestAuthorizeOpenRecordsDeniedAttemptsWhenEnabled(t *testing.T) {
	b := validBooking()
	svc, audits, channel := newAuthorizer(b, true)

	// Denied on window.
	_, err := svc.AuthorizeOpen(context.Background(), userU1, b.ID, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrBookingNotActive)

	// Denied on lookup.
	_, err = svc.AuthorizeOpen(context.Background(), userU2, b.ID, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrBookingNotFound)

	denied := audits.byAction(audit.ActionOpenDenied)
	require.Len(t, denied, 2)
	assert.Equal(t, "booking_not_active", denied[0].Metadata["reason"])
	assert.Equal(t, b.LockerID, denied[0].LockerID)
	assert.Equal(t, "booking_not_found", denied[1].Metadata["reason"])
	assert.Empty(t, denied[1].LockerID)

	// Still zero grant entries and zero hardware signals.
	assert.Empty(t, audits.byAction(audit.ActionOpen))
	assert.Empty(t, channel.signals)
}

func TestAuthorizeOpenConcurrentCallsSameBooking(t *testing.T) {
	// Two concurrent opens of the same booking are both allowed; each call
	// is stateless and leaves one trail entry.
	b := validBooking()
	svc, _, _ := newAuthorizer(b, false)
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.AuthorizeOpen(context.Background(), userU1, b.ID, at)
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		assert.NoError(t, <-done)
	}
}
