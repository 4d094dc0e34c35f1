package probe

import "strings"

var mobileMarkers = []string{
	"mobi", "iphone", "ipod", "windows phone", "blackberry", "opera mini", "iemobile",
}

var tabletMarkers = []string{"ipad", "tablet", "kindle", "silk", "playbook"}

// ClassFromUserAgent guesses the viewport class from a user agent string.
// It is only consulted when the host reports no viewport width.
func ClassFromUserAgent(ua string) (ViewportClass, bool) {
	lower := strings.ToLower(ua)
	if strings.TrimSpace(lower) == "" {
		return Desktop, false
	}
	for _, m := range tabletMarkers {
		if strings.Contains(lower, m) {
			return Tablet, true
		}
	}
	for _, m := range mobileMarkers {
		if strings.Contains(lower, m) {
			return Mobile, true
		}
	}
	if strings.Contains(lower, "android") {
		// Android without "Mobile" is a tablet
		return Tablet, true
	}
	return Desktop, true
}

// ConnectionFromEffectiveType maps NetworkInformation.effectiveType to a quality.
// Unknown or empty values count as fast.
func ConnectionFromEffectiveType(effectiveType string) ConnectionQuality {
	switch strings.ToLower(strings.TrimSpace(effectiveType)) {
	case "slow-2g", "2g", "3g":
		return ConnectionSlow
	default:
		return ConnectionFast
	}
}
