package gmail

import (
	"encoding/base64"
	"mime"
	"strings"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// BuildMessage renders msg as an RFC 2822 html message.
func BuildMessage(msg domain.OutgoingMail) string {
	headers := []string{
		"Content-Type: text/html; charset=utf-8",
		"MIME-Version: 1.0",
		"To: " + strings.Join(msg.To, ", "),
	}
	if len(msg.Cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(msg.Cc, ", "))
	}
	if len(msg.Bcc) > 0 {
		headers = append(headers, "Bcc: "+strings.Join(msg.Bcc, ", "))
	}
	// Q-encoding leaves plain ASCII subjects untouched.
	headers = append(headers, "Subject: "+mime.QEncoding.Encode("utf-8", msg.Subject))

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.HTMLBody
}

// EncodeRaw returns the base64url form (no padding) expected by users.messages.send.
func EncodeRaw(msg domain.OutgoingMail) string {
	return base64.RawURLEncoding.EncodeToString([]byte(BuildMessage(msg)))
}
