/*
Command custodyd operates a custody wallet stored in a local directory.

The state is kept in an iavl tree. Every message is signed with the key
file given by the --key flag and delivered to the application in the same
process. Use "serve" to expose the state over HTTP.
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
