// Package gmail sends candidate emails through the Gmail API and acquires the
// operator's OAuth token.
package gmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// Sender implements ports.MailSender with users.messages.send.
type Sender struct {
	oauth    *oauth2.Config // refreshes expired tokens when set
	endpoint string
	logger   zerolog.Logger
}

// NewSender builds a Sender. endpoint overrides the Gmail API base URL and is
// empty in production.
func NewSender(oauth *oauth2.Config, endpoint string, logger zerolog.Logger) *Sender {
	return &Sender{oauth: oauth, endpoint: endpoint, logger: logger}
}

func (s *Sender) Send(ctx context.Context, token *oauth2.Token, msg domain.OutgoingMail) (string, error) {
	if token == nil || token.AccessToken == "" && token.RefreshToken == "" {
		return "", &domain.AuthError{Reason: "no access token", Err: domain.ErrAuthRequired}
	}

	opts := []option.ClientOption{option.WithHTTPClient(s.httpClient(ctx, token))}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return "", &domain.TransportError{Err: fmt.Errorf("gmail client: %w", err)}
	}

	sent, err := srv.Users.Messages.Send("me", &gmail.Message{Raw: EncodeRaw(msg)}).Context(ctx).Do()
	if err != nil {
		return "", classify(err)
	}

	s.logger.Debug().Str("message_id", sent.Id).Str("thread_id", sent.ThreadId).Msg("gmail accepted message")
	return sent.Id, nil
}

func (s *Sender) httpClient(ctx context.Context, token *oauth2.Token) *http.Client {
	if s.oauth != nil {
		return s.oauth.Client(ctx, token)
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
}

// classify separates authorization failures from everything else.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return &domain.AuthError{Reason: gerr.Message, Err: domain.ErrAuthExpired}
		case http.StatusForbidden:
			return &domain.AuthError{Reason: gerr.Message, Err: domain.ErrAuthDenied}
		}
		return &domain.TransportError{Err: err}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return &domain.AuthError{Reason: "token refresh failed", Err: domain.ErrAuthExpired}
	}
	return &domain.TransportError{Err: err}
}
