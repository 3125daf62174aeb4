package elasticsearch

import (
	"fmt"
	"time"

	"casereview/api/models"
	"casereview/api/models/indexes"

	"github.com/elastic/go-elasticsearch/v7"
)

func GetFamiliesByProjectGuid(cfg *models.Config, es *elasticsearch.Client, projectGuid string, size int) (map[string]interface{}, error) {
	mustMap := []map[string]interface{}{}

	if projectGuid != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"projectGuid": map[string]interface{}{
					"query": projectGuid,
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
	}

	fmt.Printf("Family query start: %s\n", time.Now())
	return executeSearch(cfg, es, familiesIndex, query)
}

func GetAllProjects(cfg *models.Config, es *elasticsearch.Client, size int) (map[string]interface{}, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
		"size": size,
	}

	return executeSearch(cfg, es, projectsIndex, query)
}

func GetFamiliesByGuids(cfg *models.Config, es *elasticsearch.Client, guids []string) (map[string]interface{}, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"guid.keyword": guids,
			},
		},
		"size": len(guids),
	}

	return executeSearch(cfg, es, familiesIndex, query)
}

func GetIndividualsByFamilyGuids(cfg *models.Config, es *elasticsearch.Client, familyGuids []string, size int) (map[string]interface{}, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"familyGuid.keyword": familyGuids,
			},
		},
		"size": size,
	}

	fmt.Printf("Individual query start: %s\n", time.Now())
	return executeSearch(cfg, es, individualsIndex, query)
}

func GetAllIndividuals(cfg *models.Config, es *elasticsearch.Client, size int) (map[string]interface{}, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
		"size": size,
	}

	return executeSearch(cfg, es, individualsIndex, query)
}

func GetIndividualsByGuids(cfg *models.Config, es *elasticsearch.Client, guids []string) (map[string]interface{}, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"guid.keyword": guids,
			},
		},
		"size": len(guids),
	}

	return executeSearch(cfg, es, individualsIndex, query)
}

// UpdateFamily fully replaces a family document. Edits always round-trip
// as whole entities, there is no partial client-side merge.
func UpdateFamily(cfg *models.Config, es *elasticsearch.Client, family indexes.Family) error {
	return indexDocument(cfg, es, familiesIndex, family.Guid, family)
}

func UpdateIndividual(cfg *models.Config, es *elasticsearch.Client, individual indexes.Individual) error {
	return indexDocument(cfg, es, individualsIndex, individual.Guid, individual)
}
