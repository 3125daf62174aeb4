package elasticsearch

import (
	"fmt"
	"time"

	"casereview/api/models"
	c "casereview/api/models/constants"
	s "casereview/api/models/constants/sort"

	"github.com/elastic/go-elasticsearch/v7"
)

func GetVariantsInPositionRange(cfg *models.Config, es *elasticsearch.Client,
	chromosome string, lowerBound int, upperBound int,
	variantId string, geneId string, familyGuid string,
	size int, sortByPosition c.SortDirection,
	genomeVersion c.GenomeVersion) (map[string]interface{}, error) {

	// begin building the request body.
	mustMap := []map[string]interface{}{}

	if chromosome != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": "chrom:" + chromosome,
			},
		})
	}

	if variantId != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"variantId": map[string]interface{}{
					"query": variantId,
				},
			},
		})
	}

	if geneId != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"geneIds": map[string]interface{}{
					"query": geneId,
				},
			},
		})
	}

	if familyGuid != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"familyGuids": map[string]interface{}{
					"query": familyGuid,
				},
			},
		})
	}

	if genomeVersion != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"genomeVersion": map[string]interface{}{
					"query": genomeVersion,
				},
			},
		})
	}

	rangeMapSlice := []map[string]interface{}{}

	// TODO: make upperbound and lowerbound nilable, somehow?
	if upperBound > 0 {
		rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
			"range": map[string]interface{}{
				"pos": map[string]interface{}{
					"lte": upperBound,
				},
			},
		})
	}

	if lowerBound > 0 {
		rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
			"range": map[string]interface{}{
				"end": map[string]interface{}{
					"gte": lowerBound,
				},
			},
		})
	}

	// individually append each range component to the must map
	for _, rms := range rangeMapSlice {
		mustMap = append(mustMap, rms)
	}

	// overall query structure
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
	}

	// set up sorting
	if sortByPosition == s.Undefined {
		// default to ascending order
		sortByPosition = s.Ascending
	}

	// append sorting components
	query["sort"] = map[string]string{
		"pos": string(sortByPosition),
	}

	fmt.Printf("Variant query start: %s\n", time.Now())
	return executeSearch(cfg, es, variantsIndex, query)
}

func CountVariantsInPositionRange(cfg *models.Config, es *elasticsearch.Client,
	chromosome string, lowerBound int, upperBound int,
	variantId string, geneId string, familyGuid string,
	genomeVersion c.GenomeVersion) (map[string]interface{}, error) {

	mustMap := []map[string]interface{}{}

	if chromosome != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": "chrom:" + chromosome,
			},
		})
	}

	if variantId != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"variantId": map[string]interface{}{
					"query": variantId,
				},
			},
		})
	}

	if geneId != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"geneIds": map[string]interface{}{
					"query": geneId,
				},
			},
		})
	}

	if familyGuid != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"familyGuids": map[string]interface{}{
					"query": familyGuid,
				},
			},
		})
	}

	if genomeVersion != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"genomeVersion": map[string]interface{}{
					"query": genomeVersion,
				},
			},
		})
	}

	if upperBound > 0 {
		mustMap = append(mustMap, map[string]interface{}{
			"range": map[string]interface{}{
				"pos": map[string]interface{}{
					"lte": upperBound,
				},
			},
		})
	}

	if lowerBound > 0 {
		mustMap = append(mustMap, map[string]interface{}{
			"range": map[string]interface{}{
				"end": map[string]interface{}{
					"gte": lowerBound,
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
	}

	fmt.Printf("Variant count start: %s\n", time.Now())
	return executeCount(cfg, es, variantsIndex, query)
}

func GetVariantsByGuids(cfg *models.Config, es *elasticsearch.Client, guids []string) (map[string]interface{}, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"guid.keyword": guids,
			},
		},
		"size": len(guids),
	}

	return executeSearch(cfg, es, variantsIndex, query)
}

func GetVariantsBucketsByKeyword(cfg *models.Config, es *elasticsearch.Client, keyword string) (map[string]interface{}, error) {

	// begin building the request body.
	aggMap := map[string]interface{}{
		"size": "0",
		"aggs": map[string]interface{}{
			"items": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": keyword,
					"size":  "10000", // increases the number of buckets returned (default is 10)
				},
			},
		},
	}

	return executeSearch(cfg, es, variantsIndex, aggMap)
}
