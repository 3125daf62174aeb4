package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"casereview/api/models"
	c "casereview/api/models/constants"

	"github.com/elastic/go-elasticsearch/v7"
)

func GetOutliersByIndividualGuids(cfg *models.Config, es *elasticsearch.Client,
	individualGuids []string, analysisType c.AnalysisType, tissueType c.TissueType,
	significantOnly bool, size int) (map[string]interface{}, error) {

	// begin building the request body.
	mustMap := []map[string]interface{}{{
		"terms": map[string]interface{}{
			"individualGuid.keyword": individualGuids,
		}},
	}

	if analysisType != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"analysisType": map[string]interface{}{
					"query": analysisType,
				},
			},
		})
	}

	if tissueType != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"tissueType": map[string]interface{}{
					"query": tissueType,
				},
			},
		})
	}

	if significantOnly {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"isSignificant": map[string]interface{}{
					"query": true,
				},
			},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{{
					"bool": map[string]interface{}{
						"must": mustMap,
					}},
				},
			},
		},
		"size": size,
		// keep a deterministic order: most significant first
		"sort": map[string]string{
			"pValue": "asc",
		},
	}

	fmt.Printf("Outlier query start: %s\n", time.Now())
	return executeSearch(cfg, es, outliersIndex, query)
}

func GetOutlierTissueBucketsByIndividualGuid(cfg *models.Config, es *elasticsearch.Client,
	individualGuid string) (map[string]interface{}, error) {

	aggMap := map[string]interface{}{
		"size": "0",
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"individualGuid": map[string]interface{}{
					"query": individualGuid,
				},
			},
		},
		"aggs": map[string]interface{}{
			"items": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "tissueType.keyword",
					"size":  "100",
				},
			},
		},
	}

	return executeSearch(cfg, es, outliersIndex, aggMap)
}

// DeleteOutliersBySampleGuid removes every outlier document previously
// loaded for a sample. A reload fully replaces the prior load rather
// than merging into it.
func DeleteOutliersBySampleGuid(cfg *models.Config, es *elasticsearch.Client, sampleGuid string) (map[string]interface{}, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"sampleGuid": map[string]interface{}{
					"query": sampleGuid,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("error encoding query: %v", err)
	}

	if cfg.Debug {
		fmt.Println(buf.String())
	}

	res, deleteErr := es.DeleteByQuery([]string{outliersIndex}, &buf,
		es.DeleteByQuery.WithContext(context.Background()),
		es.DeleteByQuery.WithRefresh(true),
	)
	if deleteErr != nil {
		fmt.Printf("Error getting response: %s\n", deleteErr)
		return nil, deleteErr
	}
	defer res.Body.Close()

	return decodeResponse(cfg, res.String())
}

func GetOutlierBucketsByKeyword(cfg *models.Config, es *elasticsearch.Client, keyword string) (map[string]interface{}, error) {
	aggMap := map[string]interface{}{
		"size": "0",
		"aggs": map[string]interface{}{
			"items": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": keyword,
					"size":  "10000",
				},
			},
		},
	}

	return executeSearch(cfg, es, outliersIndex, aggMap)
}
