package pedigreeService

import (
	"testing"

	affectedStatus "casereview/api/models/constants/affected-status"
	analysisStatus "casereview/api/models/constants/analysis-status"
	"casereview/api/models/constants/sex"
	"casereview/api/models/indexes"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestApplyFamilyEdits(t *testing.T) {
	existing := map[string]indexes.Family{
		"F-1": {Guid: "F-1", Description: "old", AnalysisStatus: analysisStatus.Queued},
		"F-2": {Guid: "F-2", CaseReviewNotes: "keep"},
	}

	t.Run("valid rows are applied when others fail validation", func(t *testing.T) {
		applied, editErrors := applyFamilyEdits(existing, []FamilyEdit{
			{Guid: "F-1", Description: strPtr("updated"), AnalysisStatus: strPtr("I")},
			{Guid: "F-404", Description: strPtr("nobody home")},
			{Guid: "F-2", AnalysisStatus: strPtr("bogus")},
		})

		assert.Len(t, applied, 1)
		assert.Equal(t, "F-1", applied[0].Guid)
		assert.Equal(t, "updated", applied[0].Description)
		assert.Equal(t, analysisStatus.InProgress, applied[0].AnalysisStatus)

		assert.Len(t, editErrors, 2)
		assert.Equal(t, "F-404", editErrors[0].Guid)
		assert.Equal(t, "unknown family guid", editErrors[0].Message)
		assert.Equal(t, "F-2", editErrors[1].Guid)
		assert.Contains(t, editErrors[1].Message, "unknown analysis status")
	})

	t.Run("nil fields leave the entity untouched", func(t *testing.T) {
		applied, editErrors := applyFamilyEdits(existing, []FamilyEdit{
			{Guid: "F-2", CaseReviewSummary: strPtr("summary")},
		})

		assert.Empty(t, editErrors)
		assert.Len(t, applied, 1)
		assert.Equal(t, "keep", applied[0].CaseReviewNotes)
		assert.Equal(t, "summary", applied[0].CaseReviewSummary)
	})
}

func TestApplyIndividualEdits(t *testing.T) {
	existing := map[string]indexes.Individual{
		"I-1": {Guid: "I-1", Sex: sex.Male, Notes: "old note"},
		"I-2": {Guid: "I-2", Affected: affectedStatus.Unaffected},
	}

	t.Run("valid rows are applied when others fail validation", func(t *testing.T) {
		applied, editErrors := applyIndividualEdits(existing, []IndividualEdit{
			{Guid: "I-1", Sex: strPtr("F"), Notes: strPtr("new note")},
			{Guid: "I-404", Notes: strPtr("nobody home")},
			{Guid: "I-2", Sex: strPtr("X")},
			{Guid: "I-2", Affected: strPtr("bogus")},
		})

		assert.Len(t, applied, 1)
		assert.Equal(t, "I-1", applied[0].Guid)
		assert.Equal(t, sex.Female, applied[0].Sex)
		assert.Equal(t, "new note", applied[0].Notes)

		assert.Len(t, editErrors, 3)
		assert.Equal(t, "unknown individual guid", editErrors[0].Message)
		assert.Contains(t, editErrors[1].Message, "unknown sex")
		assert.Contains(t, editErrors[2].Message, "unknown affected status")
	})

	t.Run("explicit unknown codes are legal values", func(t *testing.T) {
		applied, editErrors := applyIndividualEdits(existing, []IndividualEdit{
			{Guid: "I-1", Sex: strPtr("U")},
			{Guid: "I-2", Affected: strPtr("U")},
		})

		assert.Empty(t, editErrors)
		assert.Len(t, applied, 2)
		assert.Equal(t, sex.Unknown, applied[0].Sex)
		assert.Equal(t, affectedStatus.Unknown, applied[1].Affected)
	})
}

func TestApplyHpoTermsEdits(t *testing.T) {
	existing := map[string]indexes.Individual{
		"I-1": {Guid: "I-1", Features: []indexes.HpoTerm{{Id: "HP:0000001"}}},
		"I-2": {Guid: "I-2"},
	}

	t.Run("features are fully replaced, not merged", func(t *testing.T) {
		applied, editErrors := applyHpoTermsEdits(existing, []HpoTermsEdit{
			{Guid: "I-1", Features: []indexes.HpoTerm{{Id: "HP:0001250", Label: "Seizure"}}},
		})

		assert.Empty(t, editErrors)
		assert.Len(t, applied, 1)
		assert.Equal(t, []indexes.HpoTerm{{Id: "HP:0001250", Label: "Seizure"}}, applied[0].Features)
	})

	t.Run("rows with a blank term id are rejected, valid rows still land", func(t *testing.T) {
		applied, editErrors := applyHpoTermsEdits(existing, []HpoTermsEdit{
			{Guid: "I-1", Features: []indexes.HpoTerm{{Id: ""}}},
			{Guid: "I-2", Features: []indexes.HpoTerm{{Id: "HP:0000118"}}},
			{Guid: "I-404"},
		})

		assert.Len(t, applied, 1)
		assert.Equal(t, "I-2", applied[0].Guid)

		assert.Len(t, editErrors, 2)
		assert.Equal(t, "I-1", editErrors[0].Guid)
		assert.Equal(t, "missing term id", editErrors[0].Message)
		assert.Equal(t, "unknown individual guid", editErrors[1].Message)
	})

	t.Run("an empty feature list clears the individual", func(t *testing.T) {
		applied, editErrors := applyHpoTermsEdits(existing, []HpoTermsEdit{
			{Guid: "I-1", Features: []indexes.HpoTerm{}},
		})

		assert.Empty(t, editErrors)
		assert.Len(t, applied, 1)
		assert.Empty(t, applied[0].Features)
	})
}
