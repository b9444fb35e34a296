package mailer

import (
	"context"

	"kritika/pkg/rabbitmq"
)

// Queue is a Mailer that enqueues messages on RabbitMQ instead of
// delivering them inline. A worker (see main) drains the queue over SMTP.
// The publish itself is synchronous, so broker failures still fail the
// caller's request.
type Queue struct {
	client *rabbitmq.Client
}

// NewQueue creates a queue-backed mailer on top of an existing client.
func NewQueue(client *rabbitmq.Client) *Queue {
	return &Queue{client: client}
}

// Send enqueues the message as a mail job.
func (q *Queue) Send(_ context.Context, to, subject, body string) error {
	return q.client.PublishMailJob(rabbitmq.MailJob{To: to, Subject: subject, Body: body})
}
