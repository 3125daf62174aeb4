package utils

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// ExtractHitSources pulls the '_source' maps out of a raw
// elasticsearch search response
func ExtractHitSources(result map[string]interface{}) []map[string]interface{} {
	sources := make([]map[string]interface{}, 0)

	hitsWrapper, ok := result["hits"].(map[string]interface{})
	if !ok {
		return sources
	}
	hits, ok := hitsWrapper["hits"].([]interface{})
	if !ok {
		return sources
	}

	for _, hit := range hits {
		hitMapped, hitOk := hit.(map[string]interface{})
		if !hitOk {
			continue
		}
		if source, sourceOk := hitMapped["_source"].(map[string]interface{}); sourceOk {
			sources = append(sources, source)
		}
	}
	return sources
}

// UniqueStrings returns the distinct values of 'list',
// keeping first-seen order
func UniqueStrings(list []string) []string {
	seen := make(map[string]bool)
	unique := make([]string, 0, len(list))
	for _, item := range list {
		if !seen[item] {
			seen[item] = true
			unique = append(unique, item)
		}
	}
	return unique
}
