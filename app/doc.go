/*
Package app puts the handlers together into an application.

The App is the serialization boundary: every message is processed while
holding a single lock, against a cache wrap of the committed store that is
written and committed once the handler returns.
*/
package app
