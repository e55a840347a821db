package custody

import (
	"reflect"

	"github.com/iov-one/custody/errors"
)

// assignMsg copies msg into destination when the types are compatible.
// Both pointer and value message implementations are accepted.
func assignMsg(msg Msg, destination interface{}) error {
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	target := dst.Elem()
	switch {
	case src.Type().AssignableTo(target.Type()):
		target.Set(src)
	case src.Kind() == reflect.Ptr && src.Elem().Type().AssignableTo(target.Type()):
		target.Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %s, got %T", target.Type(), msg)
	}
	return nil
}
