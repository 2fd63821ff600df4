package chrome

// Placeholder is substituted with each variant in a path template.
const Placeholder = "{edition}"

// Profile describes where a platform keeps its bookmarks stores.
type Profile struct {
	// Template is a path containing Placeholder and environment references.
	Template string
	// Variants lists install names in priority order.
	Variants []string
}

// DefaultProfile returns the stock locations for goos. Unknown systems get
// the XDG layout used on Linux.
func DefaultProfile(goos string) Profile {
	switch goos {
	case "windows":
		return Profile{
			Template: `%LOCALAPPDATA%\Google\{edition}\User Data\Default\Bookmarks`,
			Variants: []string{"Chrome", "Chrome Beta", "Chromium", "Chrome SxS"},
		}
	case "darwin":
		return Profile{
			Template: "$HOME/Library/Application Support/Google/{edition}/Default/Bookmarks",
			Variants: []string{"Chrome", "Chrome Beta", "Chromium", "Chrome Canary"},
		}
	default:
		return Profile{
			Template: "$HOME/.config/{edition}/Default/Bookmarks",
			Variants: []string{"google-chrome", "google-chrome-beta", "google-chrome-unstable", "chromium"},
		}
	}
}
