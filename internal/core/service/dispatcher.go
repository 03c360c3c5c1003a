package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

const (
	CopyModeHTML = "html"
	CopyModeText = "text"
	CopyModeNone = "none"
)

// Dispatcher hands generated emails to the mail transport or the clipboard.
type Dispatcher struct {
	composer  ports.EmailComposer
	sender    ports.MailSender
	tokens    ports.TokenStore
	clipboard ports.Clipboard
	guard     ports.InflightGuard
	logger    zerolog.Logger
}

func NewDispatcher(
	composer ports.EmailComposer,
	sender ports.MailSender,
	tokens ports.TokenStore,
	clipboard ports.Clipboard,
	guard ports.InflightGuard,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		composer:  composer,
		sender:    sender,
		tokens:    tokens,
		clipboard: clipboard,
		guard:     guard,
		logger:    logger,
	}
}

// Send validates the address lists, renders the email and delivers it with
// the stored token. Invalid input never reaches the transport. An
// authorization failure from the transport drops the stored token.
func (d *Dispatcher) Send(ctx context.Context, req ports.SendRequest) (ports.SendResult, error) {
	if !req.Recipient.Valid() {
		return ports.SendResult{}, domain.NewValidationError("recipient", "unknown recipient %q", req.Recipient)
	}
	msg, err := addresses(req)
	if err != nil {
		return ports.SendResult{}, err
	}

	release, err := d.guard.Acquire(ctx, fmt.Sprintf("send:%s:%s", req.CandidateID, req.Recipient))
	if err != nil {
		return ports.SendResult{}, err
	}
	defer release()

	email, err := d.composer.Compose(ctx, req.CandidateID, req.Recipient, req.Order)
	if err != nil {
		return ports.SendResult{}, err
	}
	msg.Subject = email.Subject
	if s := strings.TrimSpace(req.Subject); s != "" {
		msg.Subject = s
	}
	msg.HTMLBody = email.Body

	token, err := d.tokens.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return ports.SendResult{}, &domain.AuthError{Reason: "connect a mail account before sending", Err: domain.ErrAuthRequired}
		}
		return ports.SendResult{}, fmt.Errorf("load mail token: %w", err)
	}

	id, err := d.sender.Send(ctx, token, msg)
	if err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			if derr := d.tokens.Delete(ctx); derr != nil {
				d.logger.Error().Err(derr).Msg("failed to drop rejected mail token")
			}
		}
		d.logger.Warn().Err(err).
			Str("candidate_id", req.CandidateID).
			Str("recipient", string(req.Recipient)).
			Msg("email not sent")
		return ports.SendResult{}, err
	}

	d.logger.Info().
		Str("candidate_id", req.CandidateID).
		Str("recipient", string(req.Recipient)).
		Str("message_id", id).
		Int("to", len(msg.To)).
		Msg("email sent")
	return ports.SendResult{MessageID: id, Subject: msg.Subject}, nil
}

// Copy places the rendered email on the clipboard as html, falling back to
// plain text when the clipboard cannot hold html. Without any clipboard the
// payload is still returned with CopyModeNone.
func (d *Dispatcher) Copy(ctx context.Context, candidateID string, r domain.RecipientType, order domain.FieldOrder) (ports.CopyResult, error) {
	email, err := d.composer.Compose(ctx, candidateID, r, order)
	if err != nil {
		return ports.CopyResult{}, err
	}
	text := PlainText(email.Body)
	res := ports.CopyResult{Mode: CopyModeHTML, HTML: email.Body, Text: text}

	err = d.clipboard.WriteHTML(ctx, email.Body, text)
	if errors.Is(err, domain.ErrClipboardUnsupported) {
		res.Mode = CopyModeText
		err = d.clipboard.WriteText(ctx, text)
	}
	if errors.Is(err, domain.ErrClipboardUnavailable) {
		res.Mode = CopyModeNone
		return res, nil
	}
	if err != nil {
		return ports.CopyResult{}, fmt.Errorf("clipboard: %w", err)
	}
	return res, nil
}

func addresses(req ports.SendRequest) (domain.OutgoingMail, error) {
	to, err := domain.ParseAddressList("to", req.To)
	if err != nil {
		return domain.OutgoingMail{}, err
	}
	if len(to) == 0 {
		return domain.OutgoingMail{}, domain.NewValidationError("to", "at least one recipient is required")
	}
	cc, err := domain.ParseAddressList("cc", req.Cc)
	if err != nil {
		return domain.OutgoingMail{}, err
	}
	bcc, err := domain.ParseAddressList("bcc", req.Bcc)
	if err != nil {
		return domain.OutgoingMail{}, err
	}
	return domain.OutgoingMail{To: to, Cc: cc, Bcc: bcc}, nil
}
