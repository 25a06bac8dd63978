package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// AnnotatedError includes more context than a plain error that is useful for troubleshooting.
type AnnotatedError struct {
	// msg is the error message.
	msg string
	// cause is the wrapped error, nil for errors created with New.
	cause error
	// pc is the program counter for the location of the error provided by runtime.Callers.
	pc uintptr
	// attrs are slog attributes that are added to the log event to provide more context for the error.
	attrs []slog.Attr
}

func callerPC() uintptr {
	var pcs [1]uintptr
	// Skip runtime.Callers, callerPC and the exported constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see above
	return pcs[0]
}

// New creates a new AnnotatedError with the given message and attributes.
func New(msg string, attrs ...slog.Attr) error {
	return &AnnotatedError{
		msg:   msg,
		cause: nil,
		pc:    callerPC(),
		attrs: attrs,
	}
}

// NewSentinel creates a plain error without other context that can be used as sentinel error that can be detected
// with errors.Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with msg and attrs. It returns nil if err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &AnnotatedError{
		msg:   msg,
		cause: err,
		pc:    callerPC(),
		attrs: attrs,
	}
}

// Error implements error interface.
func (e *AnnotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
}

// Unwrap makes the wrapped cause visible to errors.Is and errors.As.
func (e *AnnotatedError) Unwrap() error {
	return e.cause
}

// LogValue formats the error for useful logging.
//
// The attributes of every AnnotatedError in the chain are collected so that context added at lower layers survives
// wrapping. The source is the location of the outermost annotation.
func (e *AnnotatedError) LogValue() slog.Value {
	frames := runtime.CallersFrames([]uintptr{e.pc})
	source, _ := frames.Next()
	attrs := []slog.Attr{
		slog.String("msg", e.Error()),
		slog.String("source", fmt.Sprintf("%s:%d", source.File, source.Line)),
	}

	var current error = e
	for current != nil {
		var annotated *AnnotatedError
		if !errors.As(current, &annotated) {
			break
		}
		attrs = append(attrs, annotated.attrs...)
		current = annotated.cause
	}

	return slog.GroupValue(attrs...)
}

// SlogError returns a slog attribute for logging err under the "error" key.
func SlogError(err error) slog.Attr {
	var annotated *AnnotatedError
	if errors.As(err, &annotated) && annotated.Error() == err.Error() {
		return slog.Any("error", annotated)
	}
	return slog.String("error", err.Error())
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
