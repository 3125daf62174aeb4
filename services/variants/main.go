package variantsService

import (
	"encoding/json"
	"fmt"
	"sync"

	"casereview/api/models"
	esRepo "casereview/api/repositories/elasticsearch"

	"github.com/Jeffail/gabs"
	"github.com/elastic/go-elasticsearch/v7"
)

type (
	VariantService struct {
		Config *models.Config
	}
)

func NewVariantService(cfg *models.Config) *VariantService {
	vs := &VariantService{
		Config: cfg,
	}

	return vs
}

// GetVariantsOverview gathers the distribution of a handful of keyword
// fields across the whole variants index (chromosomes, genome versions,
// family and gene associations).
func (vs *VariantService) GetVariantsOverview(es *elasticsearch.Client) map[string]interface{} {
	resultsMap := map[string]interface{}{}
	resultsMux := sync.RWMutex{}

	var wg sync.WaitGroup
	callGetBucketsByKeyword := func(key string, keyword string, _wg *sync.WaitGroup) {
		defer _wg.Done()

		results, bucketsError := esRepo.GetVariantsBucketsByKeyword(vs.Config, es, keyword)
		if bucketsError != nil {
			resultsMux.Lock()
			defer resultsMux.Unlock()

			resultsMap[key] = map[string]interface{}{
				"error": "Something went wrong. Please contact the administrator!",
			}
			return
		}

		resultsMux.Lock()
		resultsMap[key] = bucketsToCountMap(results)
		resultsMux.Unlock()
	}

	// get distribution of chromosomes
	wg.Add(1)
	go callGetBucketsByKeyword("chromosomes", "chrom.keyword", &wg)

	// get distribution of genome versions
	wg.Add(1)
	go callGetBucketsByKeyword("genomeVersions", "genomeVersion.keyword", &wg)

	// get distribution of family associations
	wg.Add(1)
	go callGetBucketsByKeyword("familyGuids", "familyGuids.keyword", &wg)

	// get distribution of genes
	wg.Add(1)
	go callGetBucketsByKeyword("geneIds", "geneIds.keyword", &wg)

	wg.Wait()

	return resultsMap
}

// GetRnaSeqOverview mirrors the variants overview for the outliers index.
func (vs *VariantService) GetRnaSeqOverview(es *elasticsearch.Client) map[string]interface{} {
	resultsMap := map[string]interface{}{}
	resultsMux := sync.RWMutex{}

	var wg sync.WaitGroup
	callGetBucketsByKeyword := func(key string, keyword string, _wg *sync.WaitGroup) {
		defer _wg.Done()

		results, bucketsError := esRepo.GetOutlierBucketsByKeyword(vs.Config, es, keyword)
		if bucketsError != nil {
			resultsMux.Lock()
			defer resultsMux.Unlock()

			resultsMap[key] = map[string]interface{}{
				"error": "Something went wrong. Please contact the administrator!",
			}
			return
		}

		resultsMux.Lock()
		resultsMap[key] = bucketsToCountMap(results)
		resultsMux.Unlock()
	}

	wg.Add(1)
	go callGetBucketsByKeyword("tissueTypes", "tissueType.keyword", &wg)

	wg.Add(1)
	go callGetBucketsByKeyword("analysisTypes", "analysisType.keyword", &wg)

	wg.Add(1)
	go callGetBucketsByKeyword("individualGuids", "individualGuid.keyword", &wg)

	wg.Add(1)
	go callGetBucketsByKeyword("sampleGuids", "sampleGuid.keyword", &wg)

	wg.Wait()

	return resultsMap
}

// bucketsToCountMap retrieves aggregations.items.buckets from a raw
// aggregation response and flattens it into a key -> doc_count map.
func bucketsToCountMap(results map[string]interface{}) map[string]interface{} {
	countMap := map[string]interface{}{}

	resultsJson, marshallErr := json.Marshal(results)
	if marshallErr != nil {
		return countMap
	}

	jsonParsed, parseErr := gabs.ParseJSON(resultsJson)
	if parseErr != nil {
		return countMap
	}

	buckets, childrenErr := jsonParsed.Path("aggregations.items.buckets").Children()
	if childrenErr != nil {
		return countMap
	}

	for _, bucket := range buckets {
		docKey := fmt.Sprint(bucket.Path("key").Data()) // ensure strings and numbers are expressed as strings
		countMap[docKey] = bucket.Path("doc_count").Data()
	}

	return countMap
}
