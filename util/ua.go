package util

import "strings"

// Ordered so more specific tokens win: Edge and Opera UAs also contain
// "Chrome", Chrome UAs also contain "Safari".
var browsers = []struct {
	token string
	name  string
}{
	{"Edg/", "Edge"},
	{"OPR/", "Opera"},
	{"Firefox/", "Firefox"},
	{"Chrome/", "Chrome"},
	{"Safari/", "Safari"},
}

var platforms = []struct {
	token string
	name  string
}{
	{"Android", "Android"},
	{"iPhone", "iOS"},
	{"iPad", "iOS"},
	{"Windows", "Windows"},
	{"Mac OS X", "macOS"},
	{"Linux", "Linux"},
}

// PasskeyNameFromUserAgent derives a default friendly name for a new passkey
// when the client did not provide one.
func PasskeyNameFromUserAgent(ua string) string {
	browser := ""
	for _, b := range browsers {
		if strings.Contains(ua, b.token) {
			browser = b.name
			break
		}
	}
	platform := ""
	for _, p := range platforms {
		if strings.Contains(ua, p.token) {
			platform = p.name
			break
		}
	}
	switch {
	case browser != "" && platform != "":
		return browser + " on " + platform
	case browser != "":
		return browser
	case platform != "":
		return platform
	default:
		return "Passkey"
	}
}
