/*
Package errors implements the error model used across custody.

Every error returned by an extension should wrap one of the root errors
declared with Register. Root errors carry a code that is stable across
releases, so a client can tell an authorization failure from a missing
transaction without parsing messages.

Create errors at the point of failure with

	errors.Wrap(errors.ErrNotFound, "transaction")
	errors.Wrapf(errors.ErrInput, "threshold %d", n)

and test them with

	errors.ErrNotFound.Is(err)

A stack trace is attached on the first Wrap only. Print it with %+v.
*/
package errors
