package pedigreeService

import (
	"fmt"
	"sync"

	"casereview/api/models"
	affectedStatus "casereview/api/models/constants/affected-status"
	analysisStatus "casereview/api/models/constants/analysis-status"
	"casereview/api/models/constants/sex"
	"casereview/api/models/dtos"
	"casereview/api/models/indexes"
	esRepo "casereview/api/repositories/elasticsearch"
	"casereview/api/utils"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

/*
	Bulk-edit application for families and individuals. Validation errors
	are reported per row ; valid rows are still applied, and the response
	carries the fully-replaced updated entities (the backend owns entity
	state, clients never merge partially).
*/

type FamilyEdit struct {
	Guid              string  `json:"guid"`
	Description       *string `json:"description,omitempty"`
	AnalysisStatus    *string `json:"analysisStatus,omitempty"`
	CaseReviewNotes   *string `json:"caseReviewNotes,omitempty"`
	CaseReviewSummary *string `json:"caseReviewSummary,omitempty"`
}

type IndividualEdit struct {
	Guid     string  `json:"guid"`
	Sex      *string `json:"sex,omitempty"`
	Affected *string `json:"affected,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type HpoTermsEdit struct {
	Guid     string            `json:"guid"`
	Features []indexes.HpoTerm `json:"features"`
}

// applyFamilyEdits validates each edit against the fetched entities and
// returns the fully-replaced rows ready to persist, next to the per-row
// rejections. An invalid row never blocks its neighbours.
func applyFamilyEdits(existingByGuid map[string]indexes.Family, edits []FamilyEdit) ([]indexes.Family, []dtos.BulkEditError) {
	applied := make([]indexes.Family, 0, len(edits))
	editErrors := make([]dtos.BulkEditError, 0)

	for _, edit := range edits {
		family, found := existingByGuid[edit.Guid]
		if !found {
			editErrors = append(editErrors, dtos.BulkEditError{
				Guid:    edit.Guid,
				Message: "unknown family guid",
			})
			continue
		}

		if edit.AnalysisStatus != nil && !analysisStatus.IsKnownAnalysisStatus(*edit.AnalysisStatus) {
			editErrors = append(editErrors, dtos.BulkEditError{
				Guid:    edit.Guid,
				Message: fmt.Sprintf("unknown analysis status %q", *edit.AnalysisStatus),
			})
			continue
		}

		if edit.Description != nil {
			family.Description = *edit.Description
		}
		if edit.AnalysisStatus != nil {
			family.AnalysisStatus = analysisStatus.CastToAnalysisStatus(*edit.AnalysisStatus)
		}
		if edit.CaseReviewNotes != nil {
			family.CaseReviewNotes = *edit.CaseReviewNotes
		}
		if edit.CaseReviewSummary != nil {
			family.CaseReviewSummary = *edit.CaseReviewSummary
		}

		applied = append(applied, family)
	}

	return applied, editErrors
}

// applyIndividualEdits is the individual counterpart of applyFamilyEdits.
// The explicit unknown codes ("U") for sex and affected status are legal
// values, not validation failures.
func applyIndividualEdits(existingByGuid map[string]indexes.Individual, edits []IndividualEdit) ([]indexes.Individual, []dtos.BulkEditError) {
	applied := make([]indexes.Individual, 0, len(edits))
	editErrors := make([]dtos.BulkEditError, 0)

	for _, edit := range edits {
		individual, found := existingByGuid[edit.Guid]
		if !found {
			editErrors = append(editErrors, dtos.BulkEditError{
				Guid:    edit.Guid,
				Message: "unknown individual guid",
			})
			continue
		}

		if edit.Sex != nil && !sex.IsKnownSex(*edit.Sex) {
			editErrors = append(editErrors, dtos.BulkEditError{
				Guid:    edit.Guid,
				Message: fmt.Sprintf("unknown sex %q", *edit.Sex),
			})
			continue
		}

		if edit.Affected != nil && !affectedStatus.IsKnownAffectedStatus(*edit.Affected) {
			editErrors = append(editErrors, dtos.BulkEditError{
				Guid:    edit.Guid,
				Message: fmt.Sprintf("unknown affected status %q", *edit.Affected),
			})
			continue
		}

		if edit.Sex != nil {
			individual.Sex = sex.CastToSex(*edit.Sex)
		}
		if edit.Affected != nil {
			individual.Affected = affectedStatus.CastToAffectedStatus(*edit.Affected)
		}
		if edit.Notes != nil {
			individual.Notes = *edit.Notes
		}

		applied = append(applied, individual)
	}

	return applied, editErrors
}

// applyHpoTermsEdits fully replaces the feature list of each individual.
func applyHpoTermsEdits(existingByGuid map[string]indexes.Individual, edits []HpoTermsEdit) ([]indexes.Individual, []dtos.BulkEditError) {
	applied := make([]indexes.Individual, 0, len(edits))
	editErrors := make([]dtos.BulkEditError, 0)

	for _, edit := range edits {
		individual, found := existingByGuid[edit.Guid]
		if !found {
			editErrors = append(editErrors, dtos.BulkEditError{
				Guid:    edit.Guid,
				Message: "unknown individual guid",
			})
			continue
		}

		invalidTerm := ""
		for _, feature := range edit.Features {
			if feature.Id == "" {
				invalidTerm = "missing term id"
				break
			}
		}
		if invalidTerm != "" {
			editErrors = append(editErrors, dtos.BulkEditError{
				Guid:    edit.Guid,
				Message: invalidTerm,
			})
			continue
		}

		individual.Features = edit.Features

		applied = append(applied, individual)
	}

	return applied, editErrors
}

func BulkEditFamilies(cfg *models.Config, es *elasticsearch.Client, edits []FamilyEdit) ([]indexes.Family, []dtos.BulkEditError) {
	guids := make([]string, 0, len(edits))
	for _, edit := range edits {
		guids = append(guids, edit.Guid)
	}

	existingByGuid, fetchErr := fetchFamiliesByGuids(cfg, es, guids)
	if fetchErr != nil {
		return nil, []dtos.BulkEditError{{Message: fmt.Sprintf("error fetching families : %v", fetchErr)}}
	}

	applied, editErrors := applyFamilyEdits(existingByGuid, edits)

	var (
		updated    = make([]indexes.Family, 0, len(applied))
		updatedMux = sync.Mutex{}
		errorsMux  = sync.Mutex{}
	)

	g := new(errgroup.Group)
	for _, family := range applied {
		family := family

		g.Go(func() error {
			if updateErr := esRepo.UpdateFamily(cfg, es, family); updateErr != nil {
				errorsMux.Lock()
				editErrors = append(editErrors, dtos.BulkEditError{
					Guid:    family.Guid,
					Message: updateErr.Error(),
				})
				errorsMux.Unlock()
				return nil
			}

			updatedMux.Lock()
			updated = append(updated, family)
			updatedMux.Unlock()
			return nil
		})
	}
	g.Wait()

	return updated, editErrors
}

func BulkEditIndividuals(cfg *models.Config, es *elasticsearch.Client, edits []IndividualEdit) ([]indexes.Individual, []dtos.BulkEditError) {
	guids := make([]string, 0, len(edits))
	for _, edit := range edits {
		guids = append(guids, edit.Guid)
	}

	existingByGuid, fetchErr := fetchIndividualsByGuids(cfg, es, guids)
	if fetchErr != nil {
		return nil, []dtos.BulkEditError{{Message: fmt.Sprintf("error fetching individuals : %v", fetchErr)}}
	}

	applied, editErrors := applyIndividualEdits(existingByGuid, edits)

	return writeIndividuals(cfg, es, applied, editErrors)
}

func BulkEditHpoTerms(cfg *models.Config, es *elasticsearch.Client, edits []HpoTermsEdit) ([]indexes.Individual, []dtos.BulkEditError) {
	guids := make([]string, 0, len(edits))
	for _, edit := range edits {
		guids = append(guids, edit.Guid)
	}

	existingByGuid, fetchErr := fetchIndividualsByGuids(cfg, es, guids)
	if fetchErr != nil {
		return nil, []dtos.BulkEditError{{Message: fmt.Sprintf("error fetching individuals : %v", fetchErr)}}
	}

	applied, editErrors := applyHpoTermsEdits(existingByGuid, edits)

	return writeIndividuals(cfg, es, applied, editErrors)
}

func writeIndividuals(cfg *models.Config, es *elasticsearch.Client, applied []indexes.Individual, editErrors []dtos.BulkEditError) ([]indexes.Individual, []dtos.BulkEditError) {
	var (
		updated    = make([]indexes.Individual, 0, len(applied))
		updatedMux = sync.Mutex{}
		errorsMux  = sync.Mutex{}
	)

	g := new(errgroup.Group)
	for _, individual := range applied {
		individual := individual

		g.Go(func() error {
			if updateErr := esRepo.UpdateIndividual(cfg, es, individual); updateErr != nil {
				errorsMux.Lock()
				editErrors = append(editErrors, dtos.BulkEditError{
					Guid:    individual.Guid,
					Message: updateErr.Error(),
				})
				errorsMux.Unlock()
				return nil
			}

			updatedMux.Lock()
			updated = append(updated, individual)
			updatedMux.Unlock()
			return nil
		})
	}
	g.Wait()

	return updated, editErrors
}

func fetchFamiliesByGuids(cfg *models.Config, es *elasticsearch.Client, guids []string) (map[string]indexes.Family, error) {
	result, searchErr := esRepo.GetFamiliesByGuids(cfg, es, guids)
	if searchErr != nil {
		return nil, searchErr
	}

	byGuid := map[string]indexes.Family{}
	for _, source := range utils.ExtractHitSources(result) {
		var family indexes.Family
		mapstructure.Decode(source, &family)
		byGuid[family.Guid] = family
	}
	return byGuid, nil
}

func fetchIndividualsByGuids(cfg *models.Config, es *elasticsearch.Client, guids []string) (map[string]indexes.Individual, error) {
	result, searchErr := esRepo.GetIndividualsByGuids(cfg, es, guids)
	if searchErr != nil {
		return nil, searchErr
	}

	byGuid := map[string]indexes.Individual{}
	for _, source := range utils.ExtractHitSources(result) {
		var individual indexes.Individual
		mapstructure.Decode(source, &individual)
		byGuid[individual.Guid] = individual
	}
	return byGuid, nil
}
