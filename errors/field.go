package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name to err. Nil is returned for a nil err.
//
// Field names follow the Go names of the validated structure. Nested fields
// are joined with a dot and slice elements use their index, for example
// "Actions.0.Target".
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField appends a field error to errorsOrNil. A nil fieldErrOrNil
// leaves errorsOrNil unchanged.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns all errors attached to fieldName. Both wrapped and
// appended errors are searched.
func FieldErrors(err error, fieldName string) []error {
	switch e := err.(type) {
	case nil:
		return nil
	case fielder:
		if e.Field() == fieldName {
			return []error{err}
		}
	case unpacker:
		var res []error
		for _, inner := range e.Unpack() {
			res = append(res, FieldErrors(inner, fieldName)...)
		}
		return res
	}
	if c, ok := err.(causer); ok {
		return FieldErrors(c.Cause(), fieldName)
	}
	return nil
}

type fielder interface {
	Field() string
}
