package assert

import (
	"reflect"

	"github.com/iov-one/custody/errors"
)

// Tester is the minimal subset of testing.TB needed to run all assert commands
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Nil fails the test if given value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v shows the stack trace of errors carrying one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics will run given function and recover any panic. It will fail the test
// if given function call did not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError ensures that given error contains exactly one field error for
// given name and that it is of the wanted type (.Is method call).
// Use nil as the match value to ensure no error was found for the name.
func FieldError(t Tester, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			logAll(t, errs)
			t.Fatalf("expected no error for %q, got %d", fieldName, len(errs))
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("no error found for %q", fieldName)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("unexpected error found: %q", errs[0])
		}
	default:
		logAll(t, errs)
		t.Fatalf("want one error for %q, got %d", fieldName, len(errs))
	}
}

func logAll(t Tester, errs []error) {
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}

// IsErr is a convenient helper that checks if the errors are a match
// and prints out the difference if not as well as failing the assertion.
func IsErr(t Tester, want, got error) {
	t.Helper()

	if want == got {
		return
	}

	type comparator interface {
		Is(error) bool
	}

	if want, ok := want.(comparator); ok && want.Is(got) {
		return
	}

	t.Fatalf("want %q, got %+v", want, got)
}
