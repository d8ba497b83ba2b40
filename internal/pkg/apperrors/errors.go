package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the wizard engine. Validation-class errors are handled
// at the route and never reach the global handler; session-integrity errors
// always do.
var (
	// ErrRequestAlreadyExists: an extension request for the company in
	// context already exists in this session.
	ErrRequestAlreadyExists = errors.New("extension request already exists for company")

	// ErrUploadSizeExceeded: the multipart stream crossed the configured
	// byte ceiling and was destroyed mid-transfer.
	ErrUploadSizeExceeded = errors.New("uploaded file exceeds the maximum size")

	// ErrUploadEmptyFile: the stream completed but carried zero bytes.
	ErrUploadEmptyFile = errors.New("no file chosen")

	// ErrUploadUnsupportedMime: the attachment API rejected the payload
	// with an unsupported-media-type status.
	ErrUploadUnsupportedMime = errors.New("file type is not supported")

	// ErrNoAttachments: continue-without-documents was requested but the
	// current reason has no attachments.
	ErrNoAttachments = errors.New("reason has no attachments")
)

// SessionDataError marks a required session field as missing. Always fatal to
// the current handler; the error middleware bounces it to the error page.
type SessionDataError struct {
	Field string
}

func (e *SessionDataError) Error() string {
	return fmt.Sprintf("required session field missing: %s", e.Field)
}

func MissingSessionField(field string) error {
	return &SessionDataError{Field: field}
}

// DownstreamError carries the HTTP status the extension-request API answered
// with. Call sites inspect Status for the codes they can recover from; the
// rest bubble to the global handler.
type DownstreamError struct {
	Operation string
	Status    int
	Err       error
}

func (e *DownstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("downstream %s failed (status %d): %v", e.Operation, e.Status, e.Err)
	}
	return fmt.Sprintf("downstream %s failed (status %d)", e.Operation, e.Status)
}

func (e *DownstreamError) Unwrap() error { return e.Err }

// DownstreamStatus extracts the HTTP status from a downstream error chain,
// or 0 when err is not downstream.
func DownstreamStatus(err error) int {
	var de *DownstreamError
	if errors.As(err, &de) {
		return de.Status
	}
	return 0
}
