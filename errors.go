package certmaker

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is raised by callers checking user input, never by generation itself.
	KindValidation
	KindCrypto
	KindIO
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCrypto:
		return "crypto"
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error carries the failure kind so callers can branch on it instead of matching messages.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("certmaker: %s %s failed, %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("certmaker: %s failed, %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func KindOf(err error) (kind Kind) {
	var e *Error
	if errors.As(err, &e) {
		kind = e.Kind
		return
	}
	kind = KindUnknown
	return
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func ValidationError(errs ...error) error {
	joined := errors.Join(errs...)
	if joined == nil {
		return nil
	}
	return &Error{
		Kind: KindValidation,
		Op:   "validate",
		Err:  joined,
	}
}

func cryptoError(op string, err error) error {
	return &Error{Kind: KindCrypto, Op: op, Err: err}
}

func ioError(op string, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

func parseError(op string, err error) error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}
