package errors

import "fmt"

// Common error types
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrMissingBucket = New("GCS bucket name is required")

	// Audio errors
	ErrFileNotFound  = New("file not found")
	ErrEmptyWaveform = New("waveform is empty")
	ErrInvalidWindow = New("window length must be positive")
	ErrDecodeFailed  = New("audio decode failed")
	ErrConvertFailed = New("audio conversion failed")

	// Diarization errors (recovered locally, never fatal to a run)
	ErrNoFeatures   = New("no feature vectors extracted")
	ErrClusterCount = New("cluster count must be positive")

	// Output errors (always fatal to a run)
	ErrSinkWrite = New("transcript sink write failed")

	// Provider errors
	ErrTranscriptionFailed = New("transcription failed")
	ErrEmptyTranscript     = New("provider returned no segments")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
