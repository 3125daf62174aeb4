package rnaseqService

import (
	"sort"

	c "casereview/api/models/constants"
	"casereview/api/models/constants/chromosome"
	"casereview/api/models/indexes"
)

/*
	Pure rna-seq derivation helpers : matching splice-junction outlier
	intervals against (padded) variant intervals, flattening outlier
	records across the individuals of a variant's families, and the
	tissue-type selection rules used by the outlier endpoints.
*/

// Interval is the query side of an overlap test. EndChrom is only
// set for breakpoint-spanning structural variants, in which case it
// takes precedence over Chrom when matching candidates.
type Interval struct {
	Chrom    string
	Pos      int
	End      int
	EndChrom string
}

func (i Interval) QueryChrom() string {
	if i.EndChrom != "" {
		return i.EndChrom
	}
	return i.Chrom
}

func IntervalFromVariant(variant indexes.Variant) Interval {
	return Interval{
		Chrom:    variant.Chrom,
		Pos:      variant.Pos,
		End:      variant.End,
		EndChrom: variant.EndChrom,
	}
}

// OverlapsPadded produces a predicate testing whether a candidate outlier
// record's interval intersects 'query' once 'padding' has been applied
// symmetrically to the query side :
//
//	candidate.Start <= query.End+padding  &&  candidate.End >= query.Pos-padding
//
// A reversed query (Pos > End) degenerates to always-false through the
// same inequality, which is accepted behavior rather than an error.
// Malformed candidates (missing chromosome or interval fields) are
// excluded rather than raising, since upstream data may be incomplete.
func OverlapsPadded(query Interval, padding int) func(candidate indexes.RnaSeqOutlier) bool {
	queryChrom := chromosome.Normalize(query.QueryChrom())

	return func(candidate indexes.RnaSeqOutlier) bool {
		if candidate.Chrom == "" || candidate.Start <= 0 || candidate.End <= 0 {
			// incomplete record
			return false
		}

		if chromosome.Normalize(candidate.Chrom) != queryChrom {
			return false
		}

		return candidate.Start <= query.End+padding && candidate.End >= query.Pos-padding
	}
}

// OverlappingOutliers flattens the outlier records belonging to
// 'individualGuids' (duplicates across individuals preserved) and keeps
// those whose intervals intersect the padded query interval. The result
// is never nil ; callers treat empty as "nothing to show", not an error.
// Individuals are visited in sorted guid order so the output does not
// depend on the order of the input guids.
func OverlappingOutliers(outliersByIndividual map[string][]indexes.RnaSeqOutlier,
	individualGuids []string, query Interval, padding int) []indexes.RnaSeqOutlier {

	overlaps := OverlapsPadded(query, padding)

	sortedGuids := make([]string, len(individualGuids))
	copy(sortedGuids, individualGuids)
	sort.Strings(sortedGuids)

	results := make([]indexes.RnaSeqOutlier, 0)
	seenGuids := make(map[string]bool)
	for _, individualGuid := range sortedGuids {
		if seenGuids[individualGuid] {
			// set semantics over the individual guids themselves
			continue
		}
		seenGuids[individualGuid] = true

		for _, outlier := range outliersByIndividual[individualGuid] {
			if overlaps(outlier) {
				results = append(results, outlier)
			}
		}
	}

	return results
}

// FilterByTissue keeps the outliers measured in the given tissue.
// An unknown/unset tissue keeps everything.
func FilterByTissue(outliers []indexes.RnaSeqOutlier, tissue c.TissueType) []indexes.RnaSeqOutlier {
	if tissue == "" {
		return outliers
	}

	filtered := make([]indexes.RnaSeqOutlier, 0)
	for _, outlier := range outliers {
		if outlier.TissueType == tissue {
			filtered = append(filtered, outlier)
		}
	}
	return filtered
}

// TissueSelection models the tissue dropdown of the outlier views :
// initially nothing is selected, a transition only happens on an
// explicit selection, and a fresh value is used per request (the
// remount reset of the original component).
type TissueSelection struct {
	selected c.TissueType
}

func (ts *TissueSelection) Select(tissue c.TissueType) {
	ts.selected = tissue
}

// Current resolves the effective tissue for the given options list.
// While unselected (or when the explicit selection is no longer among
// the options) the LAST option wins - a deterministic tie-break kept
// from the upstream ordering of the sample data.
func (ts *TissueSelection) Current(options []c.TissueType) c.TissueType {
	if ts.selected != "" {
		for _, option := range options {
			if option == ts.selected {
				return ts.selected
			}
		}
	}

	if len(options) == 0 {
		return ""
	}
	return options[len(options)-1]
}
