package email

import "errors"

var (
	ErrInvalidConfig     = errors.New("email: invalid configuration")
	ErrInvalidRecipient  = errors.New("email: missing or malformed recipient address")
	ErrEmptySubject      = errors.New("email: subject is required")
	ErrUnnamedAttachment = errors.New("email: attachment requires a filename")
	ErrSendFailed        = errors.New("email: failed to send")
)
