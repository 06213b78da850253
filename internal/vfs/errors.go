package vfs

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Status classifies a failure reported as an *Error. PackName returns
// StatusInvalidName and the snapshot code returns StatusInternal. The file
// operations (Create, Destroy, Open, Close, Read, Write, Lseek) report
// failure only through their bool/-1 results and produce no *Error.
type Status byte

const (
	StatusOK Status = iota
	StatusNameConflict
	StatusNotFound
	StatusTableFull
	StatusInvalidSeek
	StatusInvalidName
	StatusInvalidHandle
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNameConflict:
		return "name conflict"
	case StatusNotFound:
		return "not found"
	case StatusTableFull:
		return "table full"
	case StatusInvalidSeek:
		return "invalid seek"
	case StatusInvalidName:
		return "invalid name"
	case StatusInvalidHandle:
		return "invalid handle"
	default:
		return "internal error"
	}
}

// Error is a small helper so callers can recover the failure's Status
// without parsing strings.
type Error struct {
	status Status
	msg    string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("vfs: %s: %v", e.msg, e.cause)
	}
	return fmt.Sprintf("vfs: %s", e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Status() Status { return e.status }

func newError(status Status, format string, args ...interface{}) *Error {
	return &Error{status: status, msg: fmt.Sprintf(format, args...)}
}

func wrapError(status Status, err error, context string) *Error {
	return &Error{status: status, msg: context, cause: xerrors.Errorf("%w", err)}
}
