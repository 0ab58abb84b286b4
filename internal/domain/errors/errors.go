package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// Build error kinds. A *PathError wraps exactly one of them, so callers can
// branch with errors.Is regardless of the underlying cause.
var (
	ErrDiscovery       = errors.New("discovery failed")
	ErrMissingMetadata = errors.New("missing metadata")
	ErrInvalidMetadata = errors.New("invalid metadata")
	ErrWrite           = errors.New("write failed")
)

// PathError ties a build error kind to the file (or directory) that caused it.
type PathError struct {
	Kind error
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Discovery(root string, err error) error {
	return &PathError{Kind: ErrDiscovery, Path: root, Err: err}
}

func MissingMetadata(path string) error {
	return &PathError{Kind: ErrMissingMetadata, Path: path}
}

func InvalidMetadata(path string, err error) error {
	return &PathError{Kind: ErrInvalidMetadata, Path: path, Err: err}
}

func Write(path string, err error) error {
	return &PathError{Kind: ErrWrite, Path: path, Err: err}
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}
