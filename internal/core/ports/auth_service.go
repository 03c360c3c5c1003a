package ports

import (
	"context"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// AuthService authenticates the operator driving the workflow API.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Operator, error)
}
