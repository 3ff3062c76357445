package repository

import (
	"context"

	"github.com/isaacphi/awsdocs/internal/domain"
)

// ListFilter narrows an invocation listing. Zero values mean no restriction.
type ListFilter struct {
	ToolID string
	Limit  int
}

type InvocationRepository interface {
	Record(ctx context.Context, inv *domain.Invocation) error
	List(ctx context.Context, filter ListFilter) ([]domain.Invocation, error)
	FindByPartialID(ctx context.Context, partialID string) (*domain.Invocation, error)
	Clear(ctx context.Context) (int64, error)
	Close() error
}

// Recorder stores every tool invocation it observes.
type Recorder struct {
	repo InvocationRepository
}

func NewRecorder(repo InvocationRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Observe(ctx context.Context, inv domain.Invocation) error {
	return r.repo.Record(ctx, &inv)
}
