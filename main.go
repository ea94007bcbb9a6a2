// capgen converts season statistics between provider XML exports and the
// legacy CAP binary format.
//
// Usage:
//
//	capgen encode [files or directories]   XML -> CAP
//	capgen decode [files or directories]   CAP -> text report
package main

import "github.com/beaumcc/cap-generator/cmd"

func main() {
	cmd.Execute()
}
