package ports

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// MailSender delivers a message as the account that owns token.
// Authorization failures are *domain.AuthError, anything else *domain.TransportError.
type MailSender interface {
	Send(ctx context.Context, token *oauth2.Token, msg domain.OutgoingMail) (messageID string, err error)
}

// TokenStore holds the operator's mail token. Get returns domain.ErrAuthRequired
// when no token is stored.
type TokenStore interface {
	Get(ctx context.Context) (*oauth2.Token, error)
	Put(ctx context.Context, token *oauth2.Token) error
	Delete(ctx context.Context) error
}

// Clipboard writes generated content for pasting into another mail client.
type Clipboard interface {
	// WriteHTML stores html with text as the plain alternative. It returns
	// domain.ErrClipboardUnsupported when the target cannot hold html and
	// domain.ErrClipboardUnavailable when there is no clipboard.
	WriteHTML(ctx context.Context, html, text string) error
	WriteText(ctx context.Context, text string) error
}

// InflightGuard rejects a second concurrent action under the same key with
// domain.ErrActionInFlight. release must be called once the action finishes.
type InflightGuard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
