package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/locker-access-backend/internal/locker"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/clock"
)

type fakeRepository struct {
	created *Booking
	overlap bool
}

func (f *fakeRepository) Create(_ context.Context, b *Booking) error {
	b.ID = "b7f0c3d8-3a52-4b8f-8f93-2d6a1c6a0e11"
	f.created = b
	return nil
}

func (f *fakeRepository) GetByID(context.Context, string) (*Booking, error) {
	return nil, ErrNotFound
}

func (f *fakeRepository) List(context.Context, Filter) ([]*Booking, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) FindOpenable(context.Context, string, string) (*Booking, error) {
	return nil, ErrNotFound
}

func (f *fakeRepository) HasOverlap(context.Context, string, time.Time, time.Time) (bool, error) {
	return f.overlap, nil
}

type fakeLockerService struct {
	lockers map[string]*locker.Locker
}

func (f *fakeLockerService) GetByID(_ context.Context, id string) (*locker.Locker, error) {
	l, ok := f.lockers[id]
	if !ok {
		return nil, locker.ErrNotFound
	}
	return l, nil
}

func (f *fakeLockerService) Create(context.Context, locker.CreateRequest) (*locker.Locker, error) {
	return nil, locker.ErrNotFound
}

func (f *fakeLockerService) List(context.Context, locker.Filter) ([]*locker.Locker, int, error) {
	return nil, 0, nil
}

const lockerID = "1fd9a40f-13c1-44bb-9c03-8f2bb1f4a701"

func newBookingService(repo *fakeRepository, active bool) Service {
	lockers := &fakeLockerService{
		lockers: map[string]*locker.Locker{
			lockerID: {ID: lockerID, Name: "Locker 12", IsActive: active},
		},
	}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return NewService(repo, lockers, clock.Fixed{T: now})
}

func TestCreateStartsPendingAndUnpaid(t *testing.T) {
	repo := &fakeRepository{}
	svc := newBookingService(repo, true)

	b, err := svc.Create(context.Background(), CreateRequest{
		UserID:    "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1",
		LockerID:  lockerID,
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentUnpaid, b.PaymentStatus)
	require.NotNil(t, repo.created)
	assert.Equal(t, lockerID, repo.created.LockerID)
}

func TestCreateRejectsInvalidWindow(t *testing.T) {
	repo := &fakeRepository{}
	svc := newBookingService(repo, true)

	start := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)

	for name, end := range map[string]time.Time{
		"end before start": start.Add(-time.Hour),
		"zero length":      start,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateRequest{
				UserID:    "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1",
				LockerID:  lockerID,
				StartTime: start,
				EndTime:   end,
			})
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
	assert.Nil(t, repo.created)
}

func TestCreateRejectsPastStart(t *testing.T) {
	repo := &fakeRepository{}
	svc := newBookingService(repo, true)

	// Clock is pinned at 2026-03-01 10:00 UTC.
	_, err := svc.Create(context.Background(), CreateRequest{
		UserID:    "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1",
		LockerID:  lockerID,
		StartTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStartTimePast)
}

func TestCreateRejectsUnknownLocker(t *testing.T) {
	repo := &fakeRepository{}
	svc := newBookingService(repo, true)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID:    "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1",
		LockerID:  "e2a4a7cc-6f60-4b2c-9e3f-16f6157a1d10",
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrLockerNotFound)
}

func TestCreateRejectsInactiveLocker(t *testing.T) {
	repo := &fakeRepository{}
	svc := newBookingService(repo, false)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID:    "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1",
		LockerID:  lockerID,
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrLockerInactive)
}

func TestCreateRejectsOverlap(t *testing.T) {
	repo := &fakeRepository{overlap: true}
	svc := newBookingService(repo, true)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID:    "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1",
		LockerID:  lockerID,
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Nil(t, repo.created)
}
