package constants

/*
Defines a set of base level
constants and enums to be used
throughout the case review api and
it's associated services.
*/
type GenomeVersion string
type SortDirection string

type TissueType string
type AnalysisType string

type AnalysisStatus string
type Sex string
type AffectedStatus string
