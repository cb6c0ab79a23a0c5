package locker

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/locker-access-backend/internal/location"
)

type CreateRequest struct {
	LocationID string
	Name       string
	Size       string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Locker, error)
	GetByID(ctx context.Context, id string) (*Locker, error)
	List(ctx context.Context, filter Filter) ([]*Locker, int, error)
}

type service struct {
	repo       Repository
	locService location.Service
}

func NewService(repo Repository, locService location.Service) Service {
	return &service{
		repo:       repo,
		locService: locService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Locker, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	// Validate the location exists before inserting.
	loc, err := s.locService.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			return nil, ErrInvalidLocation
		}
		return nil, err
	}

	l := &Locker{
		LocationID:   loc.ID,
		LocationName: loc.Name,
		Name:         name,
		Size:         strings.TrimSpace(req.Size),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Locker, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Locker, int, error) {
	return s.repo.List(ctx, filter)
}
