package analysisStatus

import (
	"casereview/api/models/constants"
	"strings"
)

const (
	Unknown constants.AnalysisStatus = ""

	InProgress       constants.AnalysisStatus = "I"
	Queued           constants.AnalysisStatus = "Q"
	WaitingForData   constants.AnalysisStatus = "W"
	SolvedKnownGene  constants.AnalysisStatus = "S_kgfp"
	SolvedNovelGene  constants.AnalysisStatus = "S_ng"
	PartiallySolved  constants.AnalysisStatus = "P"
	ClosedUnsolved   constants.AnalysisStatus = "C"
	AnalyzedUnsolved constants.AnalysisStatus = "A"
)

func CastToAnalysisStatus(text string) constants.AnalysisStatus {
	switch strings.ToLower(text) {
	case "i":
		return InProgress
	case "q":
		return Queued
	case "w":
		return WaitingForData
	case "s_kgfp":
		return SolvedKnownGene
	case "s_ng":
		return SolvedNovelGene
	case "p":
		return PartiallySolved
	case "c":
		return ClosedUnsolved
	case "a":
		return AnalyzedUnsolved
	default:
		return Unknown
	}
}

func IsKnownAnalysisStatus(text string) bool {
	return CastToAnalysisStatus(text) != Unknown
}
