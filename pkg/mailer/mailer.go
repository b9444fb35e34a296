// Package mailer dispatches transactional email. The AuthService only
// depends on the Mailer interface; delivery is either direct SMTP or a
// RabbitMQ-backed queue drained by a worker.
package mailer

import "context"

// Mailer sends a single message. Errors must propagate to the caller:
// a failed confirmation-code dispatch fails the whole request.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
