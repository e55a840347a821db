package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		emptyTargetErr  = Field("Target", ErrEmpty, "required")
		badTargetErr    = Field("Target", ErrInput, "length %d", 3)
		valueErr        = Field("Value", ErrAmount, "delegate calls move no funds")
		actionsMultiErr = Field("Actions", Append(emptyTargetErr, valueErr), "action 0")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   emptyTargetErr,
			Field: "Target",
			Want:  []error{emptyTargetErr},
		},
		"two errors found by the name": {
			Err:   Append(emptyTargetErr, badTargetErr),
			Field: "Target",
			Want:  []error{emptyTargetErr, badTargetErr},
		},
		"nested field error is found": {
			Err:   Wrap(actionsMultiErr, "queue"),
			Field: "Actions",
			Want:  []error{actionsMultiErr},
		},
		"no match": {
			Err:   Append(emptyTargetErr, valueErr),
			Field: "Payload",
			Want:  nil,
		},
		"nil error": {
			Err:   nil,
			Field: "Target",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestAppendField(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Threshold", nil)
	if errs != nil {
		t.Fatal("nil field error must be ignored")
	}
	errs = AppendField(errs, "Threshold", ErrInput)
	errs = AppendField(errs, "Signatories", ErrEmpty)
	if !ErrInput.Is(errs) || !ErrEmpty.Is(errs) {
		t.Fatalf("both errors expected: %v", errs)
	}
	if n := len(FieldErrors(errs, "Signatories")); n != 1 {
		t.Fatalf("want one signatories error, got %d", n)
	}
}
