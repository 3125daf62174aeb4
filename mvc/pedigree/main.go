package pedigree

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"casereview/api/contexts"
	"casereview/api/models/dtos"
	"casereview/api/models/dtos/errors"
	"casereview/api/models/indexes"
	esRepo "casereview/api/repositories/elasticsearch"
	pedigreeService "casereview/api/services/pedigree"
	viewsService "casereview/api/services/views"
	"casereview/api/utils"

	"github.com/labstack/echo"
	"github.com/mitchellh/mapstructure"
)

func ProjectsGet(c echo.Context) error {
	fmt.Printf("[%s] - ProjectsGet hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	docs, searchErr := esRepo.GetAllProjects(gc.Config, gc.Es7Client, 10000)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	projects := make([]indexes.Project, 0)
	for _, source := range utils.ExtractHitSources(docs) {
		var project indexes.Project
		mapstructure.Decode(source, &project)
		projects = append(projects, project)
	}

	respDTO := dtos.ProjectsResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Results:     projects,
	}

	return c.JSON(http.StatusOK, respDTO)
}

func FamiliesGetByProjectId(c echo.Context) error {
	fmt.Printf("[%s] - FamiliesGetByProjectId hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	projectGuid := c.QueryParam("projectGuid")

	docs, searchErr := esRepo.GetFamiliesByProjectGuid(gc.Config, gc.Es7Client, projectGuid, 10000)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	respDTO := dtos.FamiliesResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Results:     decodeFamilyHits(docs),
	}

	return c.JSON(http.StatusOK, respDTO)
}

func IndividualsGetByFamilyId(c echo.Context) error {
	fmt.Printf("[%s] - IndividualsGetByFamilyId hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	familyGuids := strings.Split(c.QueryParam("familyGuids"), ",")
	if len(familyGuids) == 1 && familyGuids[0] == "" {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing 'familyGuids' query parameter"))
	}

	docs, searchErr := esRepo.GetIndividualsByFamilyGuids(gc.Config, gc.Es7Client, familyGuids, 10000)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	respDTO := dtos.IndividualsResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Results:     decodeIndividualHits(docs),
	}

	return c.JSON(http.StatusOK, respDTO)
}

// IndividualsGetGroupedByFamilyId serves the family-grouped view of
// a project's individuals
func IndividualsGetGroupedByFamilyId(c echo.Context) error {
	fmt.Printf("[%s] - IndividualsGetGroupedByFamilyId hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	familyGuids := strings.Split(c.QueryParam("familyGuids"), ",")
	if len(familyGuids) == 1 && familyGuids[0] == "" {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing 'familyGuids' query parameter"))
	}

	docs, searchErr := esRepo.GetIndividualsByFamilyGuids(gc.Config, gc.Es7Client, familyGuids, 10000)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	state := viewsService.State{Individuals: decodeIndividualHits(docs)}

	return c.JSON(http.StatusOK, viewsService.IndividualsByFamily(state))
}

func FamiliesBulkEdit(c echo.Context) error {
	fmt.Printf("[%s] - FamiliesBulkEdit hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	var edits []pedigreeService.FamilyEdit
	if bindErr := c.Bind(&edits); bindErr != nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("invalid request body"))
	}
	if len(edits) == 0 {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("empty edit list"))
	}

	updated, editErrors := pedigreeService.BulkEditFamilies(gc.Config, gc.Es7Client, edits)

	return c.JSON(http.StatusOK, dtos.BulkEditResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Updated:     updated,
		Errors:      editErrors,
	})
}

func IndividualsBulkEdit(c echo.Context) error {
	fmt.Printf("[%s] - IndividualsBulkEdit hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	var edits []pedigreeService.IndividualEdit
	if bindErr := c.Bind(&edits); bindErr != nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("invalid request body"))
	}
	if len(edits) == 0 {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("empty edit list"))
	}

	updated, editErrors := pedigreeService.BulkEditIndividuals(gc.Config, gc.Es7Client, edits)

	return c.JSON(http.StatusOK, dtos.BulkEditResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Updated:     updated,
		Errors:      editErrors,
	})
}

func HpoTermsBulkEdit(c echo.Context) error {
	fmt.Printf("[%s] - HpoTermsBulkEdit hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	var edits []pedigreeService.HpoTermsEdit
	if bindErr := c.Bind(&edits); bindErr != nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("invalid request body"))
	}
	if len(edits) == 0 {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("empty edit list"))
	}

	updated, editErrors := pedigreeService.BulkEditHpoTerms(gc.Config, gc.Es7Client, edits)

	return c.JSON(http.StatusOK, dtos.BulkEditResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Updated:     updated,
		Errors:      editErrors,
	})
}

func decodeFamilyHits(docs map[string]interface{}) []indexes.Family {
	families := make([]indexes.Family, 0)
	for _, source := range utils.ExtractHitSources(docs) {
		// cast map[string]interface{} to struct
		var family indexes.Family
		mapstructure.Decode(source, &family)
		families = append(families, family)
	}
	return families
}

func decodeIndividualHits(docs map[string]interface{}) []indexes.Individual {
	individuals := make([]indexes.Individual, 0)
	for _, source := range utils.ExtractHitSources(docs) {
		var individual indexes.Individual
		mapstructure.Decode(source, &individual)
		individuals = append(individuals, individual)
	}
	return individuals
}
