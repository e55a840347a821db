package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none or only one non nil error is provided, this is returned as it is.
// Otherwise an error that reports all of them is returned. Is called on the
// result matches if any of the clubbed errors matches.
func Append(errs ...error) error {
	var all []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if u, ok := e.(unpacker); ok {
			all = append(all, u.Unpack()...)
		} else {
			all = append(all, e)
		}
	}

	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return multiErr(all)
	}
}

type multiErr []error

// Unpack implements the unpacker interface.
func (errs multiErr) Unpack() []error {
	return errs
}

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(errs), strings.Join(points, "\n\t"))
}

// unpacker is implemented by errors that group together many errors.
type unpacker interface {
	Unpack() []error
}
