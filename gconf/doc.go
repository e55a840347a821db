/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under the "_c:<pkg>" key.
It is loaded from the "conf" section of the genesis file and read back with
Load.
*/
package gconf
