package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"casereview/api/models"
	"casereview/api/models/indexes"

	"github.com/elastic/go-elasticsearch/v7"
)

const (
	variantsIndex    = "variants"
	familiesIndex    = "families"
	individualsIndex = "individuals"
	projectsIndex    = "projects"
	outliersIndex    = "rnaseq-outliers"
)

var indexMappings = map[string]map[string]interface{}{
	variantsIndex:    indexes.VARIANT_INDEX_MAPPING,
	familiesIndex:    indexes.FAMILY_INDEX_MAPPING,
	individualsIndex: indexes.INDIVIDUAL_INDEX_MAPPING,
	projectsIndex:    indexes.PROJECT_INDEX_MAPPING,
	outliersIndex:    indexes.RNASEQ_OUTLIER_INDEX_MAPPING,
}

// InitIndices ensures all indices used by the service exist with
// their expected mappings. Pre-existing indices are left untouched.
func InitIndices(cfg *models.Config, es *elasticsearch.Client) error {
	for indexName, mapping := range indexMappings {
		existsRes, existsErr := es.Indices.Exists([]string{indexName})
		if existsErr != nil {
			return fmt.Errorf("checking index %s : %v", indexName, existsErr)
		}
		existsRes.Body.Close()
		if existsRes.StatusCode == 200 {
			continue
		}

		body := map[string]interface{}{
			"mappings": mapping,
		}

		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding mapping for %s : %v", indexName, err)
		}

		createRes, createErr := es.Indices.Create(indexName,
			es.Indices.Create.WithBody(&buf))
		if createErr != nil {
			return fmt.Errorf("creating index %s : %v", indexName, createErr)
		}
		createRes.Body.Close()

		fmt.Printf("[%s] - Created index %s\n", time.Now(), indexName)
	}

	return nil
}

// executeSearch runs an already-built query map against an index and
// decodes the raw response into a generic map for the caller to pick over.
func executeSearch(cfg *models.Config, es *elasticsearch.Client, index string, query map[string]interface{}) (map[string]interface{}, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("error encoding query: %v", err)
	}

	if cfg.Debug {
		// view the outbound elasticsearch query
		fmt.Println(buf.String())
	}

	res, searchErr := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
	)
	if searchErr != nil {
		fmt.Printf("Error getting response: %s\n", searchErr)
		return nil, searchErr
	}
	defer res.Body.Close()

	return decodeResponse(cfg, res.String())
}

func executeCount(cfg *models.Config, es *elasticsearch.Client, index string, query map[string]interface{}) (map[string]interface{}, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("error encoding query: %v", err)
	}

	if cfg.Debug {
		fmt.Println(buf.String())
	}

	res, countErr := es.Count(
		es.Count.WithContext(context.Background()),
		es.Count.WithIndex(index),
		es.Count.WithBody(&buf),
	)
	if countErr != nil {
		fmt.Printf("Error getting response: %s\n", countErr)
		return nil, countErr
	}
	defer res.Body.Close()

	return decodeResponse(cfg, res.String())
}

func decodeResponse(cfg *models.Config, resultString string) (map[string]interface{}, error) {
	if cfg.Debug {
		fmt.Println(resultString)
	}

	// Known bug: the raw response string comes back with a preceding
	// status-code marker (i.e. '[200 OK] ') which needs trimming
	bracketEnd := strings.Index(resultString, "] ")
	if bracketEnd != -1 && strings.HasPrefix(resultString, "[") {
		resultString = resultString[bracketEnd+2:]
	}

	result := make(map[string]interface{})
	if umErr := json.Unmarshal([]byte(resultString), &result); umErr != nil {
		fmt.Printf("Error unmarshalling response: %s\n", umErr)
		return nil, umErr
	}

	return result, nil
}

// indexDocument upserts a single document by id and refreshes the
// index so follow-up reads observe the write.
func indexDocument(cfg *models.Config, es *elasticsearch.Client, index string, documentId string, document interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(document); err != nil {
		return fmt.Errorf("error encoding document: %v", err)
	}

	if cfg.Debug {
		fmt.Println(buf.String())
	}

	res, indexErr := es.Index(index, &buf,
		es.Index.WithContext(context.Background()),
		es.Index.WithDocumentID(documentId),
		es.Index.WithRefresh("true"),
	)
	if indexErr != nil {
		return indexErr
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document %s into %s : %s", documentId, index, res.String())
	}

	return nil
}
