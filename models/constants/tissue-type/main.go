package tissueType

import (
	"casereview/api/models/constants"
	"strings"
)

const (
	Unknown constants.TissueType = ""

	WholeBlood               constants.TissueType = "WB"
	Fibroblasts              constants.TissueType = "F"
	Muscle                   constants.TissueType = "M"
	Lymphocytes              constants.TissueType = "L"
	AirwayCulturedEpithelium constants.TissueType = "A"
	Brain                    constants.TissueType = "B"
)

func CastToTissueType(text string) constants.TissueType {
	switch strings.ToLower(text) {
	case "wb", "whole_blood":
		return WholeBlood
	case "f", "fibroblasts":
		return Fibroblasts
	case "m", "muscle":
		return Muscle
	case "l", "lymphocytes":
		return Lymphocytes
	case "a", "airway_cultured_epithelium":
		return AirwayCulturedEpithelium
	case "b", "brain":
		return Brain
	default:
		return Unknown
	}
}

func IsKnownTissueType(text string) bool {
	// attempt to cast to tissueType and
	// return if unknown tissueType
	return CastToTissueType(text) != Unknown
}
