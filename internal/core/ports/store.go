package ports

import (
	"context"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// CandidateStore is the candidate half of the external CRUD store.
type CandidateStore interface {
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	// GetCandidate returns domain.ErrCandidateNotFound when id is unknown.
	GetCandidate(ctx context.Context, id string) (domain.Candidate, error)
	// CreateCandidate returns the stored record with its server-assigned id.
	CreateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	UpdateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	// DeleteCandidate returns domain.ErrCandidateNotFound when id is unknown.
	DeleteCandidate(ctx context.Context, id string) error
	CountCreatedToday(ctx context.Context) (int, error)
}

// SelectionStore persists the per-candidate visibility and order.
type SelectionStore interface {
	// LoadSelections returns domain.ErrSelectionsNotFound when nothing is stored.
	LoadSelections(ctx context.Context, candidateID string) (domain.RecipientSelections, error)
	// SaveSelections upserts s and returns the value as persisted.
	SaveSelections(ctx context.Context, s domain.RecipientSelections) (domain.RecipientSelections, error)
}

// Store is a backend serving both aggregates.
type Store interface {
	CandidateStore
	SelectionStore
}
