package booking

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/locker-access-backend/internal/locker"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/clock"
)

type CreateRequest struct {
	UserID    string
	LockerID  string
	StartTime time.Time
	EndTime   time.Time
}

// Service owns the upstream-facing booking operations. Confirmation and
// payment capture happen outside this service; bookings it creates start as
// pending/unpaid.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// FindOpenable is the scoped read used by the access authorizer: the
	// booking is returned only if it is owned by userID, paid and confirmed.
	FindOpenable(ctx context.Context, id, userID string) (*Booking, error)
}

type service struct {
	repo          Repository
	lockerService locker.Service
	clk           clock.Clock
}

func NewService(repo Repository, lockerService locker.Service, clk clock.Clock) Service {
	return &service{
		repo:          repo,
		lockerService: lockerService,
		clk:           clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate time range. start <= end is guaranteed for every stored
	// booking by this check; readers may assume it.
	if req.EndTime.Before(req.StartTime) || req.EndTime.Equal(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(s.clk.Now()) {
		return nil, ErrStartTimePast
	}

	// 2. Validate the locker exists and is in service.
	l, err := s.lockerService.GetByID(ctx, req.LockerID)
	if err != nil {
		if errors.Is(err, locker.ErrNotFound) {
			return nil, ErrLockerNotFound
		}
		return nil, err
	}
	if !l.IsActive {
		return nil, ErrLockerInactive
	}

	// 3. Reject overlapping bookings for the same locker.
	hasOverlap, err := s.repo.HasOverlap(ctx, req.LockerID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 4. Create the booking.
	b := &Booking{
		LockerID:      req.LockerID,
		UserID:        req.UserID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) FindOpenable(ctx context.Context, id, userID string) (*Booking, error) {
	return s.repo.FindOpenable(ctx, id, userID)
}
