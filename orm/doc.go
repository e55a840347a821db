/*
Package orm provides an easy to use db wrapper.

Models are plain Go structures serialized with go-amino. They are stored in
named buckets, each one a key prefix of the underlying KVStore. Sequences
provide monotonic, never reused identifiers.
*/
package orm
