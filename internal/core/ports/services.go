package ports

import (
	"context"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// WorkspaceService is the operator-facing view of candidates and selections.
type WorkspaceService interface {
	ListCandidates(ctx context.Context, search string) ([]domain.Candidate, error)
	Candidate(ctx context.Context, id string) (domain.Candidate, error)
	CreateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	UpdateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.Stats, error)

	Selections(ctx context.Context, candidateID string) (domain.RecipientSelections, error)
	SaveSelections(ctx context.Context, s domain.RecipientSelections) (domain.RecipientSelections, error)
	ToggleField(ctx context.Context, candidateID string, key domain.FieldKey, r domain.RecipientType) (domain.RecipientSelections, error)
	SetAllForRecipient(ctx context.Context, candidateID string, r domain.RecipientType, visible bool) (domain.RecipientSelections, error)
	ReorderFields(ctx context.Context, candidateID string, from, to int) (domain.RecipientSelections, error)

	EmailComposer
}

// EmailComposer renders the email of a cached candidate.
type EmailComposer interface {
	// Compose renders the email for r. A non-empty order overrides the stored one.
	Compose(ctx context.Context, candidateID string, r domain.RecipientType, order domain.FieldOrder) (domain.Email, error)
}

// SendRequest carries the raw recipient lists as typed by the operator.
type SendRequest struct {
	CandidateID string
	Recipient   domain.RecipientType
	To          string
	Cc          string
	Bcc         string
	Subject     string // optional override of the generated subject
	Order       domain.FieldOrder
}

// SendResult reports a delivered message.
type SendResult struct {
	MessageID string `json:"messageId"`
	Subject   string `json:"subject"`
}

// CopyResult reports what ended up on the clipboard.
type CopyResult struct {
	Mode string `json:"mode"` // "html" or "text"
	HTML string `json:"html"`
	Text string `json:"text"`
}

// MailDispatcher sends or copies a generated email.
type MailDispatcher interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	Copy(ctx context.Context, candidateID string, r domain.RecipientType, order domain.FieldOrder) (CopyResult, error)
}

// AuthFlow is one interactive authorization attempt.
type AuthFlow interface {
	URL() string
	// Wait blocks until the flow completes, fails or expires.
	Wait(ctx context.Context) error
}

// MailAuthorizer acquires and drops the operator's mail token.
type MailAuthorizer interface {
	// Begin starts a flow; domain.ErrAuthInProgress while another is pending.
	Begin(ctx context.Context) (AuthFlow, error)
	Pending() (AuthFlow, bool)
	Complete(ctx context.Context, state, code string) error
	Fail(state, reason string) error
	Connected(ctx context.Context) (bool, error)
	Disconnect(ctx context.Context) error
}
