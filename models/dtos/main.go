package dtos

import (
	"casereview/api/models/constants"
	"casereview/api/models/indexes"
	"time"
)

type ApiResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// -- variant search

type VariantGetResponse struct {
	ApiResponse
	Results []VariantGetResult `json:"results"`
}

type VariantGetResult struct {
	Query         string                  `json:"query,omitempty"`
	GenomeVersion constants.GenomeVersion `json:"genomeVersion"`

	Chromosome string `json:"chromosome"`
	Start      int    `json:"start"`
	End        int    `json:"end"`

	Variants []indexes.Variant `json:"variants"`
}

type VariantCountResponse struct {
	ApiResponse
	Results []VariantCountResult `json:"results"`
}

type VariantCountResult struct {
	Query      string `json:"query,omitempty"`
	Chromosome string `json:"chromosome"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Count      int    `json:"count"`
}

// -- rna-seq outliers

type OutlierGetResponse struct {
	ApiResponse
	Results []OutlierGetResult `json:"results"`
}

type OutlierGetResult struct {
	Query    string                  `json:"query,omitempty"`
	Outliers []indexes.RnaSeqOutlier `json:"outliers"`
}

// OverlappingOutlierResponse carries the splice-junction outliers whose
// padded intervals intersect a given variant, per tissue type
type OverlappingOutlierResponse struct {
	ApiResponse
	VariantGuid string                  `json:"variantGuid"`
	TissueType  constants.TissueType    `json:"tissueType"`
	TissueTypes []constants.TissueType  `json:"tissueTypes"`
	Padding     int                     `json:"padding"`
	Outliers    []indexes.RnaSeqOutlier `json:"outliers"`
}

type TissueOptionsResponse struct {
	ApiResponse
	IndividualGuid string                 `json:"individualGuid"`
	TissueTypes    []constants.TissueType `json:"tissueTypes"`
}

// -- pedigree

type ProjectsResponse struct {
	ApiResponse
	Results []indexes.Project `json:"results"`
}

type FamiliesResponse struct {
	ApiResponse
	Results []indexes.Family `json:"results"`
}

type IndividualsResponse struct {
	ApiResponse
	Results []indexes.Individual `json:"results"`
}

// BulkEditResponse reports per-row outcomes : rows that fail validation
// are reported inline while valid rows are applied and returned as
// fully-replaced entities
type BulkEditResponse struct {
	ApiResponse
	Updated interface{}     `json:"updated"` // []indexes.Family or []indexes.Individual
	Errors  []BulkEditError `json:"errors"`
}

type BulkEditError struct {
	Guid    string `json:"guid"`
	Message string `json:"message"`
}

// -- general errors

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}

type GeneralError struct {
	Message string `json:"message"`
}
