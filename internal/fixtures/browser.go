package fixtures

import "strings"

// BrowserCategory routes browser-specific fixtures. Activation and reset
// flows consume their key on first use, so each browser project in the
// automation config gets its own pre-baked key-bearing account.
type BrowserCategory int

const (
	BrowserDefault BrowserCategory = iota
	BrowserFirefox
	BrowserMobile
)

func (c BrowserCategory) String() string {
	switch c {
	case BrowserFirefox:
		return "firefox"
	case BrowserMobile:
		return "mobile"
	default:
		return "default"
	}
}

// CategorizeBrowser maps an automation-framework project name to a
// category. Matching is case-insensitive substring. A name matching both
// the firefox and mobile markers is ambiguous and falls back to the
// default category rather than guessing.
func CategorizeBrowser(name string) BrowserCategory {
	n := strings.ToLower(name)
	firefox := strings.Contains(n, "firefox")
	mobile := strings.Contains(n, "mobile") || strings.Contains(n, "android") || strings.Contains(n, "pixel")
	switch {
	case firefox && mobile:
		return BrowserDefault
	case firefox:
		return BrowserFirefox
	case mobile:
		return BrowserMobile
	default:
		return BrowserDefault
	}
}
