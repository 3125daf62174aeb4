package rnaseq

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"casereview/api/contexts"
	"casereview/api/models/constants"
	analysisType "casereview/api/models/constants/analysis-type"
	tissueType "casereview/api/models/constants/tissue-type"
	"casereview/api/models/dtos"
	"casereview/api/models/dtos/errors"
	"casereview/api/models/indexes"
	"casereview/api/models/load"
	esRepo "casereview/api/repositories/elasticsearch"
	rnaseqService "casereview/api/services/rnaseq"
	viewsService "casereview/api/services/views"
	"casereview/api/utils"

	"github.com/Jeffail/gabs"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/mitchellh/mapstructure"
)

func GetRnaSeqOverview(c echo.Context) error {
	fmt.Printf("[%s] - GetRnaSeqOverview hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)

	resultsMap := gc.VariantService.GetRnaSeqOverview(gc.Es7Client)

	return c.JSON(http.StatusOK, resultsMap)
}

func OutliersGetByIndividualId(c echo.Context) error {
	fmt.Printf("[%s] - OutliersGetByIndividualId hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)
	individualGuids := gc.IndividualGuids

	requestedAnalysisType := analysisType.CastToAnalysisType(c.QueryParam("analysisType"))
	significantOnly := c.QueryParam("significantOnly") == "true"

	docs, searchErr := esRepo.GetOutliersByIndividualGuids(gc.Config, gc.Es7Client,
		individualGuids, requestedAnalysisType, gc.TissueType, significantOnly, 10000)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	result := dtos.OutlierGetResult{
		Query:    fmt.Sprintf("individualGuids:%s", strings.Join(individualGuids, ",")),
		Outliers: decodeOutlierHits(docs),
	}

	respDTO := dtos.OutlierGetResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		Results:     []dtos.OutlierGetResult{result},
	}

	return c.JSON(http.StatusOK, respDTO)
}

func TissueOptionsGetByIndividualId(c echo.Context) error {
	fmt.Printf("[%s] - TissueOptionsGetByIndividualId hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)
	individualGuid := gc.IndividualGuids[0]

	docs, searchErr := esRepo.GetOutlierTissueBucketsByIndividualGuid(gc.Config, gc.Es7Client, individualGuid)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	respDTO := dtos.TissueOptionsResponse{
		ApiResponse:    dtos.ApiResponse{Status: 200, Message: "Success"},
		IndividualGuid: individualGuid,
		TissueTypes:    decodeTissueBuckets(docs),
	}

	return c.JSON(http.StatusOK, respDTO)
}

// OverlappingJunctionOutliersGetByVariantId resolves the significant
// splice-junction outliers observed in the individuals of a variant's
// families whose (padded) intervals intersect the variant.
func OverlappingJunctionOutliersGetByVariantId(c echo.Context) error {
	fmt.Printf("[%s] - OverlappingJunctionOutliersGetByVariantId hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)
	cfg := gc.Config
	es := gc.Es7Client

	variantGuid := c.QueryParam("variantGuid")

	// - resolve the variant
	variantDocs, variantErr := esRepo.GetVariantsByGuids(cfg, es, []string{variantGuid})
	if variantErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	variantSources := utils.ExtractHitSources(variantDocs)
	if len(variantSources) == 0 {
		return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound(fmt.Sprintf("variant %s not found", variantGuid)))
	}

	var variant indexes.Variant
	mapstructure.Decode(variantSources[0], &variant)

	// - resolve the individuals behind the variant's families
	individualDocs, individualsErr := esRepo.GetIndividualsByFamilyGuids(cfg, es, variant.FamilyGuids, 10000)
	if individualsErr != nil {
		return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
			Status:  500,
			Message: "Something went wrong.. Please contact the administrator!",
		})
	}

	individuals := make([]indexes.Individual, 0)
	for _, source := range utils.ExtractHitSources(individualDocs) {
		var individual indexes.Individual
		mapstructure.Decode(source, &individual)
		individuals = append(individuals, individual)
	}

	state := viewsService.State{Individuals: individuals}
	individualGuids := viewsService.FamilyIndividualGuids(state, variant.FamilyGuids)

	// - fetch their significant splice outliers and aggregate the overlaps
	outliersByIndividual := map[string][]indexes.RnaSeqOutlier{}
	if len(individualGuids) > 0 {
		outlierDocs, outliersErr := esRepo.GetOutliersByIndividualGuids(cfg, es,
			individualGuids, analysisType.Splice, "", true, 10000)
		if outliersErr != nil {
			return c.JSON(http.StatusInternalServerError, dtos.ApiResponse{
				Status:  500,
				Message: "Something went wrong.. Please contact the administrator!",
			})
		}

		outlierState := viewsService.State{Outliers: decodeOutlierHits(outlierDocs)}
		outliersByIndividual = viewsService.SignificantJunctionOutliersByIndividual(outlierState)
	}

	overlapping := rnaseqService.OverlappingOutliers(outliersByIndividual,
		individualGuids, rnaseqService.IntervalFromVariant(variant), gc.Padding)

	// - narrow down to the selected tissue ; unselected falls back to
	//   the deterministic last-option default
	tissueOptions := tissueOptionsOf(overlapping)

	selection := rnaseqService.TissueSelection{}
	if gc.TissueType != "" {
		selection.Select(gc.TissueType)
	}
	effectiveTissue := selection.Current(tissueOptions)

	respDTO := dtos.OverlappingOutlierResponse{
		ApiResponse: dtos.ApiResponse{Status: 200, Message: "Success"},
		VariantGuid: variantGuid,
		TissueType:  effectiveTissue,
		TissueTypes: tissueOptions,
		Padding:     gc.Padding,
		Outliers:    rnaseqService.FilterByTissue(overlapping, effectiveTissue),
	}

	return c.JSON(http.StatusOK, respDTO)
}

func RnaSeqLoad(c echo.Context) error {
	fmt.Printf("[%s] - RnaSeqLoad hit!\n", time.Now())

	gc := c.(*contexts.CaseReviewContext)
	cfg := gc.Config
	rnaSeqPath := cfg.Api.RnaSeqPath

	loaderService := gc.LoaderService

	fileName := c.QueryParam("fileName")
	if fileName == "" {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing 'fileName' query parameter"))
	}

	sampleGuid := c.QueryParam("sampleGuid")
	individualGuid := gc.IndividualGuids[0]
	if sampleGuid == "" {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing 'sampleGuid' query parameter"))
	}

	fileAnalysisType := analysisType.CastToAnalysisType(c.QueryParam("analysisType"))
	if fileAnalysisType == analysisType.Unknown {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing or invalid 'analysisType' query parameter"))
	}

	// Read the rna-seq directory and temporarily catalog all .tsv / .tsv.gz files
	var tsvFiles []string
	err := filepath.Walk(rnaSeqPath,
		func(absoluteFileName string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if absoluteFileName == rnaSeqPath {
				// skip
				return nil
			}

			// keep track of relative path
			relativePathFileName := strings.ReplaceAll(absoluteFileName, rnaSeqPath+"/", "")

			// Filter only .tsv and .tsv.gz files
			if matched, _ := regexp.MatchString(`\.tsv(\.gz)?$`, relativePathFileName); matched {
				tsvFiles = append(tsvFiles, relativePathFileName)
			} else {
				fmt.Printf("Skipping %s\n", relativePathFileName)
			}
			return nil
		})
	if err != nil {
		fmt.Println(err)
	}

	// Locate fileName from request inside found files
	if !utils.StringInSlice(fileName, tsvFiles) {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(fmt.Sprintf("file %s not found! Aborted --", fileName)))
	}

	startTime := time.Now()
	fmt.Printf("Load Start: %s\n", startTime)

	// check if there is an already existing load request state
	if loaderService.FilenameAlreadyRunning(fileName) {
		return c.JSON(http.StatusOK, []load.LoadResponseDTO{{
			Filename:   fileName,
			SampleGuid: sampleGuid,
			State:      load.Error,
			Message:    "File already being loaded..",
		}})
	}

	newRequestState := &load.RnaSeqLoadRequest{
		Id:             uuid.New(),
		Filename:       fileName,
		SampleGuid:     sampleGuid,
		IndividualGuid: individualGuid,
		State:          load.Queued,
		CreatedAt:      fmt.Sprintf("%v", startTime),
	}
	loaderService.LoadRequestChan <- newRequestState

	responseDtos := []load.LoadResponseDTO{{
		Id:         newRequestState.Id,
		Filename:   newRequestState.Filename,
		SampleGuid: newRequestState.SampleGuid,
		State:      newRequestState.State,
		Message:    "Successfully queued..",
	}}

	go func(_fileName string, _reqStat *load.RnaSeqLoadRequest) {

		// take a spot in the queue
		loaderService.ConcurrentFileLoadQueue <- true
		// free up a spot in the queue
		defer func() {
			<-loaderService.ConcurrentFileLoadQueue
		}()

		fmt.Printf("Begin running %s !\n", _fileName)
		// each transition travels as its own copy so the listener and
		// concurrent request listings never observe a half-written state
		running := *_reqStat
		running.State = load.Running
		loaderService.LoadRequestChan <- &running

		tsvFilePath := fmt.Sprintf("%s/%s", rnaSeqPath, _fileName)

		beginProcessingTime := time.Now()
		fmt.Printf("Begin processing %s at [%s]\n", tsvFilePath, beginProcessingTime)

		processErr := loaderService.ProcessOutlierTsv(tsvFilePath,
			_reqStat.SampleGuid, _reqStat.IndividualGuid,
			fileAnalysisType, cfg.Api.FileProcessingConcurrencyLevel)
		if processErr != nil {
			msg := fmt.Sprintf("error processing %s: %s\n", _fileName, processErr)
			fmt.Println(msg)

			failed := running
			failed.State = load.Error
			failed.Message = msg
			loaderService.LoadRequestChan <- &failed

			return
		}

		fmt.Printf("Load duration for file at %s : %s\n", tsvFilePath, time.Since(beginProcessingTime))

		done := running
		done.State = load.Done
		loaderService.LoadRequestChan <- &done

		refreshWatcherState(gc)
	}(fileName, newRequestState)

	return c.JSON(http.StatusOK, responseDtos)
}

func GetAllRnaSeqLoadRequests(c echo.Context) error {
	fmt.Printf("[%s] - GetAllRnaSeqLoadRequests hit!\n", time.Now())
	loaderService := c.(*contexts.CaseReviewContext).LoaderService

	return c.JSON(http.StatusOK, loaderService.AllLoadRequests())
}

func RnaSeqLoadStats(c echo.Context) error {
	fmt.Printf("[%s] - RnaSeqLoadStats hit!\n", time.Now())
	loaderService := c.(*contexts.CaseReviewContext).LoaderService

	return c.JSON(http.StatusOK, loaderService.OutlierBulkIndexer.Stats())
}

func decodeOutlierHits(docs map[string]interface{}) []indexes.RnaSeqOutlier {
	outliers := make([]indexes.RnaSeqOutlier, 0)
	for _, source := range utils.ExtractHitSources(docs) {
		// cast map[string]interface{} to struct
		var outlier indexes.RnaSeqOutlier
		mapstructure.Decode(source, &outlier)
		outliers = append(outliers, outlier)
	}
	return outliers
}

// refreshWatcherState rebuilds the derived-view snapshot after a load
// so subscriptions fire for individuals whose outlier views changed.
func refreshWatcherState(gc *contexts.CaseReviewContext) {
	individualDocs, individualsErr := esRepo.GetAllIndividuals(gc.Config, gc.Es7Client, 10000)
	if individualsErr != nil {
		fmt.Printf("error refreshing individuals snapshot: %s\n", individualsErr)
		return
	}

	individuals := make([]indexes.Individual, 0)
	individualGuids := make([]string, 0)
	for _, source := range utils.ExtractHitSources(individualDocs) {
		var individual indexes.Individual
		mapstructure.Decode(source, &individual)
		individuals = append(individuals, individual)
		individualGuids = append(individualGuids, individual.Guid)
	}

	outliers := make([]indexes.RnaSeqOutlier, 0)
	if len(individualGuids) > 0 {
		outlierDocs, outliersErr := esRepo.GetOutliersByIndividualGuids(gc.Config, gc.Es7Client,
			individualGuids, "", "", false, 10000)
		if outliersErr != nil {
			fmt.Printf("error refreshing outliers snapshot: %s\n", outliersErr)
			return
		}
		outliers = decodeOutlierHits(outlierDocs)
	}

	gc.Watcher.Update(viewsService.State{
		Individuals: individuals,
		Outliers:    outliers,
	})
}

// tissueOptionsOf lists the distinct tissues observed in a set of
// outliers, in order of first appearance.
func tissueOptionsOf(outliers []indexes.RnaSeqOutlier) []constants.TissueType {
	options := make([]constants.TissueType, 0)
	seen := map[constants.TissueType]bool{}
	for _, outlier := range outliers {
		if outlier.TissueType == "" || seen[outlier.TissueType] {
			continue
		}
		seen[outlier.TissueType] = true
		options = append(options, outlier.TissueType)
	}
	return options
}

// decodeTissueBuckets retrieves aggregations.items.buckets from a raw
// aggregation response and keeps the recognized tissue keys.
func decodeTissueBuckets(docs map[string]interface{}) []constants.TissueType {
	tissues := make([]constants.TissueType, 0)

	docsJson, marshallErr := json.Marshal(docs)
	if marshallErr != nil {
		return tissues
	}

	jsonParsed, parseErr := gabs.ParseJSON(docsJson)
	if parseErr != nil {
		return tissues
	}

	buckets, childrenErr := jsonParsed.Path("aggregations.items.buckets").Children()
	if childrenErr != nil {
		return tissues
	}

	for _, bucket := range buckets {
		candidate := tissueType.CastToTissueType(fmt.Sprint(bucket.Path("key").Data()))
		if candidate != "" {
			tissues = append(tissues, candidate)
		}
	}

	return tissues
}
