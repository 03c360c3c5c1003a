package domain

import "time"

const RoleOperator = "operator"

// Operator is the recruiter driving the workflow. There is a single configured
// account per deployment.
type Operator struct {
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	LoggedInAt   time.Time `json:"logged_in_at"`
}
