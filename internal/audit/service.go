package audit

import "context"

// Service exposes the append-only audit trail.
type Service interface {
	// Record persists one entry. Callers on a success path must treat a
	// returned error as non-fatal: log it and keep going.
	Record(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, e *Entry) error {
	if e.Action != ActionOpen && e.Action != ActionOpenDenied {
		return ErrInvalidAction
	}
	return s.repo.Create(ctx, e)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	return s.repo.List(ctx, filter)
}
