package port

import "context"

// Mailer delivers transactional email. Dispatch is fire-and-forget: failures
// are logged by the caller and never fail the primary action.
type Mailer interface {
	SendPasswordChanged(ctx context.Context, to string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}
