/*
Package x contains some standard extensions

Extensions are maintained in their own subpackages. This package contains
the interfaces and helpers shared between them, like authentication.
*/
package x
