/*
Package sigs provides basic authentication
middleware to verify the signatures on the message,
and maintain nonces for replay protection.
*/
package sigs
