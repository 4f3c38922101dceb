package fetch

import "strings"

// loginWallMarkers are phrases shown instead of profile content to signed-out visitors.
var loginWallMarkers = []string{
	"sign in to view",
	"join linkedin to see",
	"please sign in",
	"sign in to continue",
	"you must be logged in",
	"join linkedin",
}

// IsLoginWall reports whether the page asks the visitor to sign in instead of showing content.
func IsLoginWall(html string) bool {
	lower := strings.ToLower(html)
	for _, marker := range loginWallMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
