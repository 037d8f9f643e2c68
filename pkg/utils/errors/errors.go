package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind uint

const (
	// KindUnknown represents an unclassified error
	KindUnknown Kind = iota
	// KindDomain represents invalid input data or an out-of-domain query
	KindDomain
	// KindConversion represents a failed cast between curve families
	KindConversion
	// KindConvergence represents a root finder or bootstrap that did not converge
	KindConvergence
	// KindInternal represents an internal error
	KindInternal
)

// String returns the name of the error kind
func (k Kind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindConversion:
		return "conversion"
	case KindConvergence:
		return "convergence"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// AppError represents an application error with a kind
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new error with the given message
func New(message string) error {
	return &AppError{
		Kind:    KindUnknown,
		Message: message,
	}
}

// Newf creates a new error with the given format and arguments
func Newf(format string, args ...interface{}) error {
	return &AppError{
		Kind:    KindUnknown,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with a message, keeping the kind of the wrapped error
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind:    KindOf(err),
		Message: message,
		Err:     err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapKind wraps an error with a message and reclassifies it
func WrapKind(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// WrapKindf wraps an error with a formatted message and reclassifies it
func WrapKindf(err error, kind Kind, format string, args ...interface{}) error {
	return WrapKind(err, kind, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of an error, KindUnknown if it carries none
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether any error in the chain carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Is reports whether err or any of the errors in its chain is target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Domain creates a new domain error
func Domain(message string) error {
	return &AppError{
		Kind:    KindDomain,
		Message: message,
	}
}

// Domainf creates a new formatted domain error
func Domainf(format string, args ...interface{}) error {
	return &AppError{
		Kind:    KindDomain,
		Message: fmt.Sprintf(format, args...),
	}
}

// Conversion creates a new conversion error
func Conversion(message string) error {
	return &AppError{
		Kind:    KindConversion,
		Message: message,
	}
}

// Conversionf creates a new formatted conversion error
func Conversionf(format string, args ...interface{}) error {
	return &AppError{
		Kind:    KindConversion,
		Message: fmt.Sprintf(format, args...),
	}
}

// Convergence creates a new convergence error
func Convergence(message string) error {
	return &AppError{
		Kind:    KindConvergence,
		Message: message,
	}
}

// Convergencef creates a new formatted convergence error
func Convergencef(format string, args ...interface{}) error {
	return &AppError{
		Kind:    KindConvergence,
		Message: fmt.Sprintf(format, args...),
	}
}

// Internal creates a new internal error
func Internal(message string) error {
	return &AppError{
		Kind:    KindInternal,
		Message: message,
	}
}
