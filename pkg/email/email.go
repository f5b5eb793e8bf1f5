// Package email delivers finished reports to their recipients.
//
// The production sender is Postmark; runs without Postmark credentials fall
// back to a log-only sender so batch jobs in development never send real
// mail by accident.
package email

import (
	"context"
	"regexp"
)

// Sender delivers one report email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single report delivery.
type Message struct {
	To             string // recipient address
	Subject        string
	BodyHTML       string
	Attachment     []byte // the compiled report, optional
	AttachmentName string // filename shown to the recipient
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the fields a sender cannot fill in itself.
func (m Message) Validate() error {
	if m.To == "" || !emailRegex.MatchString(m.To) {
		return ErrInvalidRecipient
	}
	if m.Subject == "" {
		return ErrEmptySubject
	}
	if len(m.Attachment) > 0 && m.AttachmentName == "" {
		return ErrUnnamedAttachment
	}
	return nil
}
