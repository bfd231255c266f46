package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind labels a fetch failure for logs and metrics. Callers treat every
// kind the same way; the label only aids diagnosis.
type ErrorKind string

const (
	KindTimeout    ErrorKind = "timeout"
	KindConnection ErrorKind = "connection"
	KindStatus     ErrorKind = "status"
	KindDecode     ErrorKind = "decode"
	KindCanceled   ErrorKind = "canceled"
	KindOther      ErrorKind = "other"
)

// FetchError is returned by FetchBooks for any transport or parse failure.
type FetchError struct {
	Kind   ErrorKind
	Status int // HTTP status for KindStatus, zero otherwise
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch books: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of a fetch failure. Errors that did not come from
// FetchBooks are classified as transport errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return classifyTransport(err)
}

func classifyTransport(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnection
	}
	return KindOther
}
