package version

import "fmt"

// Populated at build time through -ldflags "-X".
var (
	Version   = "0.1.0"
	GitHash   = "unknown"
	Timestamp = "unknown"
)

// String returns the full version line printed by the version commands.
func String() string {
	return fmt.Sprintf("Version %v %v\nBuilt at %v", Version, GitHash, Timestamp)
}
