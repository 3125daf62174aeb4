package variants

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"casereview/api/contexts"
	"casereview/api/models/dtos"
	"casereview/api/models/indexes"
	"casereview/api/mvc"
	esRepo "casereview/api/repositories/elasticsearch"
	"casereview/api/utils"

	"github.com/labstack/echo"
	"github.com/mitchellh/mapstructure"
)

func GetVariantsOverview(c echo.Context) error {
	fmt.Printf("[%s] - GetVariantsOverview hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	resultsMap := gc.VariantService.GetVariantsOverview(gc.Es7Client)

	return c.JSON(http.StatusOK, resultsMap)
}

func VariantsGetByFamilyId(c echo.Context) error {
	fmt.Printf("[%s] - VariantsGetByFamilyId hit!\n", time.Now())
	// retrieve family guids from query parameter (comma separated)
	familyGuids := strings.Split(c.QueryParam("familyGuids"), ",")
	if len(familyGuids[0]) == 0 {
		// if no guids were provided, assume "wildcard" search
		familyGuids = []string{""}
	}

	return executeGetByFamilyIds(c, familyGuids)
}

func VariantsGetByVariantId(c echo.Context) error {
	fmt.Printf("[%s] - VariantsGetByVariantId hit!\n", time.Now())

	cfg := c.(*contexts.CaseReviewContext).Config
	es, chromosome, lowerBound, upperBound, version, sortByPosition, size := mvc.RetrieveCommonElements(c)

	variantId := c.QueryParam("id")
	geneId := c.QueryParam("geneId")

	docs, searchErr := esRepo.GetVariantsInPositionRange(cfg, es,
		chromosome, lowerBound, upperBound,
		variantId, geneId, "",
		size, sortByPosition, version)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	result := dtos.VariantGetResult{
		Query:         fmt.Sprintf("variantId:%s", variantId),
		GenomeVersion: version,
		Chromosome:    chromosome,
		Start:         lowerBound,
		End:           upperBound,
		Variants:      decodeVariantHits(docs),
	}

	respDTO := dtos.VariantGetResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Results:     []dtos.VariantGetResult{result},
	}

	return c.JSON(http.StatusOK, respDTO)
}

func VariantsCountByFamilyId(c echo.Context) error {
	fmt.Printf("[%s] - VariantsCountByFamilyId hit!\n", time.Now())

	cfg := c.(*contexts.CaseReviewContext).Config
	es, chromosome, lowerBound, upperBound, version, _, _ := mvc.RetrieveCommonElements(c)

	// retrieve single family guid from query parameter
	familyGuid := c.QueryParam("familyGuid")

	docs, countErr := esRepo.CountVariantsInPositionRange(cfg, es,
		chromosome, lowerBound, upperBound,
		"", "", familyGuid, version)
	if countErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	countResult := dtos.VariantCountResult{
		Query:      fmt.Sprintf("familyGuid:%s", familyGuid),
		Chromosome: chromosome,
		Start:      lowerBound,
		End:        upperBound,
	}
	if count, countOk := docs["count"].(float64); countOk {
		countResult.Count = int(count)
	}

	respDTO := dtos.VariantCountResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Results:     []dtos.VariantCountResult{countResult},
	}

	return c.JSON(http.StatusOK, respDTO)
}

func executeGetByFamilyIds(c echo.Context, familyGuids []string) error {
	cfg := c.(*contexts.CaseReviewContext).Config

	es, chromosome, lowerBound, upperBound, version, sortByPosition, size := mvc.RetrieveCommonElements(c)

	// prepare response
	respDTO := dtos.VariantGetResponse{
		Results: make([]dtos.VariantGetResult, 0),
	}
	respDTOMux := sync.RWMutex{}

	var errors []error
	errorMux := sync.RWMutex{}

	// TODO: optimize - make 1 repo call with all family guids at once
	var wg sync.WaitGroup
	for _, familyGuid := range familyGuids {
		wg.Add(1)

		go func(_familyGuid string) {
			defer wg.Done()

			fmt.Printf("Executing Get-Variants for FamilyGuid %s\n", _familyGuid)

			docs, searchErr := esRepo.GetVariantsInPositionRange(cfg, es,
				chromosome, lowerBound, upperBound,
				"", "", _familyGuid,
				size, sortByPosition, version)
			if searchErr != nil {
				errorMux.Lock()
				errors = append(errors, searchErr)
				errorMux.Unlock()
				return
			}

			variantResult := dtos.VariantGetResult{
				Query:         fmt.Sprintf("familyGuid:%s", _familyGuid),
				GenomeVersion: version,
				Chromosome:    chromosome,
				Start:         lowerBound,
				End:           upperBound,
				Variants:      decodeVariantHits(docs),
			}

			respDTOMux.Lock()
			respDTO.Results = append(respDTO.Results, variantResult)
			respDTOMux.Unlock()

		}(familyGuid)
	}

	wg.Wait()

	if len(errors) == 0 {
		respDTO.Status = 200
		respDTO.Message = "Success"
	} else {
		respDTO.Status = 500
		respDTO.Message = "Something went wrong.. Please contact the administrator!"
	}

	return c.JSON(http.StatusOK, respDTO)
}

func decodeVariantHits(docs map[string]interface{}) []indexes.Variant {
	variants := make([]indexes.Variant, 0)
	for _, source := range utils.ExtractHitSources(docs) {
		// cast map[string]interface{} to struct
		var resultingVariant indexes.Variant
		mapstructure.Decode(source, &resultingVariant)
		variants = append(variants, resultingVariant)
	}

	fmt.Printf("Found %d docs!\n", len(variants))
	return variants
}
