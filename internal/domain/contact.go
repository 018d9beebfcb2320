package domain

import "context"

// ContactSubmission is a message submitted through the contact endpoint.
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactSender delivers contact submissions to maintainers. The default
// implementation only appends them to a local log file; real delivery is
// an external concern.
type ContactSender interface {
	Send(ctx context.Context, sub ContactSubmission) error
}

// ContactService handles contact submissions end to end.
type ContactService interface {
	Submit(ctx context.Context, sub ContactSubmission) (ok bool, detail string)
}
