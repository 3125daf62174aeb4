package rnaseqService

import (
	"testing"

	c "casereview/api/models/constants"
	tissueType "casereview/api/models/constants/tissue-type"
	"casereview/api/models/indexes"

	"github.com/stretchr/testify/assert"

	. "github.com/ahmetb/go-linq"
)

func junction(chrom string, start int, end int) indexes.RnaSeqOutlier {
	return indexes.RnaSeqOutlier{
		Chrom: chrom,
		Start: start,
		End:   end,
	}
}

func TestOverlapsPadded(t *testing.T) {
	query := Interval{Chrom: "1", Pos: 1000, End: 1000}

	t.Run("padding stretches the query interval symmetrically", func(t *testing.T) {
		overlaps := OverlapsPadded(query, 50)

		// candidate starting exactly at query.End + padding still touches
		assert.True(t, overlaps(junction("1", 1040, 1060)))
		assert.True(t, overlaps(junction("1", 1050, 1060)))

		// one base past the padded edge no longer does
		assert.False(t, overlaps(junction("1", 1051, 1060)))
		assert.False(t, overlaps(junction("1", 1060, 1080)))

		// same on the lower side
		assert.True(t, overlaps(junction("1", 900, 950)))
		assert.False(t, overlaps(junction("1", 900, 949)))
	})

	t.Run("zero padding leaves the bare interval", func(t *testing.T) {
		overlaps := OverlapsPadded(query, 0)

		assert.True(t, overlaps(junction("1", 1000, 1000)))
		assert.False(t, overlaps(junction("1", 1001, 1010)))
		assert.False(t, overlaps(junction("1", 990, 999)))
	})

	t.Run("different chromosomes never overlap", func(t *testing.T) {
		overlaps := OverlapsPadded(query, 1000)

		assert.False(t, overlaps(junction("2", 1000, 1000)))
		assert.False(t, overlaps(junction("X", 1000, 1000)))
	})

	t.Run("chr prefixes are normalized on both sides", func(t *testing.T) {
		assert.True(t, OverlapsPadded(query, 0)(junction("chr1", 1000, 1000)))
		assert.True(t, OverlapsPadded(Interval{Chrom: "chr1", Pos: 1000, End: 1000}, 0)(junction("1", 1000, 1000)))
	})

	t.Run("endChrom takes precedence for breakpoint-spanning queries", func(t *testing.T) {
		translocation := Interval{Chrom: "1", Pos: 1000, End: 1000, EndChrom: "5"}
		overlaps := OverlapsPadded(translocation, 50)

		assert.True(t, overlaps(junction("5", 990, 1010)))
		assert.False(t, overlaps(junction("1", 990, 1010)))
	})

	t.Run("malformed candidates are excluded", func(t *testing.T) {
		overlaps := OverlapsPadded(query, 1000)

		assert.False(t, overlaps(junction("", 1000, 1000)))
		assert.False(t, overlaps(junction("1", 0, 1000)))
		assert.False(t, overlaps(junction("1", 1000, 0)))
		assert.False(t, overlaps(junction("1", -5, -1)))
	})

	t.Run("reversed query degenerates to no matches", func(t *testing.T) {
		reversed := Interval{Chrom: "1", Pos: 2000, End: 1000}
		overlaps := OverlapsPadded(reversed, 0)

		assert.False(t, overlaps(junction("1", 1500, 1500)))
	})
}

func TestOverlappingOutliers(t *testing.T) {
	query := Interval{Chrom: "1", Pos: 1000, End: 1000}

	near := junction("1", 980, 1020)
	far := junction("1", 5000, 6000)

	t.Run("empty input yields an empty, non-nil result", func(t *testing.T) {
		results := OverlappingOutliers(map[string][]indexes.RnaSeqOutlier{}, []string{}, query, 100)

		assert.NotNil(t, results)
		assert.Len(t, results, 0)
	})

	t.Run("flattens matches across individuals", func(t *testing.T) {
		nearA := near
		nearA.IndividualGuid = "I-A"
		nearB := near
		nearB.IndividualGuid = "I-B"
		farB := far
		farB.IndividualGuid = "I-B"

		byIndividual := map[string][]indexes.RnaSeqOutlier{
			"I-A": {nearA},
			"I-B": {nearB, farB},
		}

		results := OverlappingOutliers(byIndividual, []string{"I-B", "I-A"}, query, 100)
		assert.Len(t, results, 2)

		// only the in-range junctions survive
		From(results).ForEachT(func(outlier indexes.RnaSeqOutlier) {
			assert.LessOrEqual(t, outlier.Start, query.End+100)
			assert.GreaterOrEqual(t, outlier.End, query.Pos-100)
		})
	})

	t.Run("result order does not depend on guid order", func(t *testing.T) {
		nearA := near
		nearA.IndividualGuid = "I-A"
		nearB := near
		nearB.IndividualGuid = "I-B"

		byIndividual := map[string][]indexes.RnaSeqOutlier{
			"I-A": {nearA},
			"I-B": {nearB},
		}

		forward := OverlappingOutliers(byIndividual, []string{"I-A", "I-B"}, query, 100)
		backward := OverlappingOutliers(byIndividual, []string{"I-B", "I-A"}, query, 100)

		assert.Equal(t, forward, backward)
	})

	t.Run("duplicate guids contribute once", func(t *testing.T) {
		nearA := near
		nearA.IndividualGuid = "I-A"

		byIndividual := map[string][]indexes.RnaSeqOutlier{
			"I-A": {nearA},
		}

		results := OverlappingOutliers(byIndividual, []string{"I-A", "I-A", "I-A"}, query, 100)
		assert.Len(t, results, 1)
	})
}

func TestFilterByTissue(t *testing.T) {
	muscle := indexes.RnaSeqOutlier{GeneId: "ENSG01", TissueType: tissueType.Muscle}
	blood := indexes.RnaSeqOutlier{GeneId: "ENSG02", TissueType: tissueType.WholeBlood}
	outliers := []indexes.RnaSeqOutlier{muscle, blood}

	assert.Equal(t, []indexes.RnaSeqOutlier{muscle}, FilterByTissue(outliers, tissueType.Muscle))
	assert.Equal(t, outliers, FilterByTissue(outliers, ""))
	assert.Len(t, FilterByTissue(outliers, tissueType.Brain), 0)
}

func TestTissueSelection(t *testing.T) {
	options := []c.TissueType{tissueType.WholeBlood, tissueType.Fibroblasts, tissueType.Muscle}

	t.Run("unselected falls back to the last option", func(t *testing.T) {
		selection := TissueSelection{}
		assert.Equal(t, tissueType.Muscle, selection.Current(options))
	})

	t.Run("explicit selection wins while available", func(t *testing.T) {
		selection := TissueSelection{}
		selection.Select(tissueType.WholeBlood)
		assert.Equal(t, tissueType.WholeBlood, selection.Current(options))
	})

	t.Run("stale selection falls back to the last option", func(t *testing.T) {
		selection := TissueSelection{}
		selection.Select(tissueType.Brain)
		assert.Equal(t, tissueType.Muscle, selection.Current(options))
	})

	t.Run("no options at all yields unset", func(t *testing.T) {
		selection := TissueSelection{}
		assert.Equal(t, c.TissueType(""), selection.Current([]c.TissueType{}))
	})
}
