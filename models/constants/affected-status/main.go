package affectedStatus

import (
	"casereview/api/models/constants"
	"strings"
)

const (
	Unknown constants.AffectedStatus = "U"

	Affected   constants.AffectedStatus = "A"
	Unaffected constants.AffectedStatus = "N"
)

func CastToAffectedStatus(text string) constants.AffectedStatus {
	switch strings.ToLower(text) {
	case "a", "affected":
		return Affected
	case "n", "unaffected":
		return Unaffected
	default:
		return Unknown
	}
}

// IsKnownAffectedStatus accepts the explicit unknown code as well, so
// callers can record an affected status of "U" on purpose.
func IsKnownAffectedStatus(text string) bool {
	switch strings.ToLower(text) {
	case "a", "affected", "n", "unaffected", "u", "unknown":
		return true
	default:
		return false
	}
}
