package custody

import "fmt"

// Release version. Suffix marks builds that are not tagged.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set with -ldflags when building custodyd.
var GitCommit = ""

// Version returns the release version followed by the commit, if known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
