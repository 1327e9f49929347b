package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNoForecast is returned when a bucket holds no records.
	ErrNoForecast = errors.New("no forecast available")
	// ErrUnknownLocation is returned for IDs outside the catalog.
	ErrUnknownLocation = errors.New("unknown location")
)

// ErrorKind classifies pipeline failures by the collaborator that failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindFetch
	KindWrite
	KindRead
	KindSend
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindFetch:
		return "FETCH_ERROR"
	case KindWrite:
		return "WRITE_ERROR"
	case KindRead:
		return "READ_ERROR"
	case KindSend:
		return "SEND_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// PipelineError is a failure scoped to one location.
type PipelineError struct {
	Kind       ErrorKind
	LocationID string
	Message    string
	Cause      error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s]: %s (caused by: %v)", e.Kind, e.LocationID, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.LocationID, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

func newPipelineError(kind ErrorKind, locationID, message string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, LocationID: locationID, Message: message, Cause: cause}
}

// NewFetchError reports a provider failure for a location.
func NewFetchError(locationID string, cause error) *PipelineError {
	return newPipelineError(KindFetch, locationID, "unable to get forecast", cause)
}

// NewWriteError reports a failed record write.
func NewWriteError(locationID, recordID string, cause error) *PipelineError {
	return newPipelineError(KindWrite, locationID, "unable to save record "+recordID, cause)
}

// NewReadError reports a failed or empty bucket read.
func NewReadError(locationID, bucket string, cause error) *PipelineError {
	return newPipelineError(KindRead, locationID, "unable to read bucket "+bucket, cause)
}

// NewSendError reports a failed notification.
func NewSendError(locationID string, cause error) *PipelineError {
	return newPipelineError(KindSend, locationID, "unable to post forecast", cause)
}

// IsKind reports whether err wraps a PipelineError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
