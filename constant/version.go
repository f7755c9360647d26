package constant

import "fmt"

const Version = "v0.1.0"

var Commit = ""

// GetVersion returns the version string printed by `cidrd version`.
func GetVersion() string {
	if Commit != "" {
		return fmt.Sprintf("cidrd version %s, commit: %s", Version, Commit)
	}
	return fmt.Sprintf("cidrd version %s", Version)
}
