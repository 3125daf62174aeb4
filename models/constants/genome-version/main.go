package genomeVersion

import (
	"casereview/api/models/constants"
	"strings"
)

const (
	Unknown constants.GenomeVersion = "Unknown"

	GRCh38 constants.GenomeVersion = "GRCh38"
	GRCh37 constants.GenomeVersion = "GRCh37"
)

func CastToGenomeVersion(text string) constants.GenomeVersion {
	switch strings.ToLower(text) {
	case "grch38", "38":
		return GRCh38
	case "grch37", "37":
		return GRCh37
	default:
		return Unknown
	}
}

func IsKnownGenomeVersion(text string) bool {
	// attempt to cast to genomeVersion and
	// return if unknown genomeVersion
	return CastToGenomeVersion(text) != Unknown
}
