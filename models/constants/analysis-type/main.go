package analysisType

import (
	"casereview/api/models/constants"
	"strings"
)

const (
	Unknown constants.AnalysisType = ""

	Expression constants.AnalysisType = "expression"
	Splice     constants.AnalysisType = "splice"
)

func CastToAnalysisType(text string) constants.AnalysisType {
	switch strings.ToLower(text) {
	case "expression":
		return Expression
	case "splice":
		return Splice
	default:
		return Unknown
	}
}

func IsKnownAnalysisType(text string) bool {
	return CastToAnalysisType(text) != Unknown
}
