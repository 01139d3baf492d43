package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrFormatMismatch  = errors.New("date-time format mismatch")
	ErrCheckFailed     = errors.New("record check failed")
	ErrFileNotFound    = errors.New("file not found")
	ErrReadFailed      = errors.New("read failed")
	ErrConfigNotFound  = errors.New("config not found")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrCanceled        = errors.New("operation canceled")
)

// LineError attaches the 1-based input line number to a conversion failure.
// LineError 为转换失败附加从 1 开始的输入行号。
type LineError struct {
	Num int
	Err error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Num, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func NewLineError(num int, err error) error {
	return &LineError{Num: num, Err: err}
}

func NewRecordError(tokens int) error {
	return fmt.Errorf("%w: need at least 2 tokens, got %d", ErrMalformedRecord, tokens)
}

func NewFormatError(value string, reason error) error {
	return fmt.Errorf("%w: %q: %v", ErrFormatMismatch, value, reason)
}

func NewCheckError(name string) error {
	return fmt.Errorf("%w: %s", ErrCheckFailed, name)
}

func NewFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, reason)
}

func NewReadError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrReadFailed, path, reason)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

// Reason maps an error to a short label used for metrics and logs.
// Reason 将错误映射为用于指标和日志的简短标签。
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, ErrFormatMismatch):
		return "format"
	case errors.Is(err, ErrCheckFailed):
		return "check"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	default:
		return "io"
	}
}
