package sex

import (
	"casereview/api/models/constants"
	"strings"
)

const (
	Unknown constants.Sex = "U"

	Male   constants.Sex = "M"
	Female constants.Sex = "F"
)

func CastToSex(text string) constants.Sex {
	switch strings.ToLower(text) {
	case "m", "male":
		return Male
	case "f", "female":
		return Female
	default:
		return Unknown
	}
}

// IsKnownSex accepts the explicit unknown code as well, so callers can
// record a sex of "U" on purpose.
func IsKnownSex(text string) bool {
	switch strings.ToLower(text) {
	case "m", "male", "f", "female", "u", "unknown":
		return true
	default:
		return false
	}
}
