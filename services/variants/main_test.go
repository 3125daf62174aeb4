package variantsService

import (
	"testing"

	"casereview/api/models"

	"github.com/stretchr/testify/assert"
)

func TestNewVariantService(t *testing.T) {
	cfg := &models.Config{}

	vs := NewVariantService(cfg)

	assert.NotNil(t, vs)
	assert.Same(t, cfg, vs.Config)
}

func TestBucketsToCountMap(t *testing.T) {
	t.Run("flattens keyword buckets into key to doc_count pairs", func(t *testing.T) {
		results := map[string]interface{}{
			"aggregations": map[string]interface{}{
				"items": map[string]interface{}{
					"buckets": []interface{}{
						map[string]interface{}{"key": "1", "doc_count": 12},
						map[string]interface{}{"key": "X", "doc_count": 3},
					},
				},
			},
		}

		countMap := bucketsToCountMap(results)

		assert.Len(t, countMap, 2)
		assert.EqualValues(t, 12, countMap["1"])
		assert.EqualValues(t, 3, countMap["X"])
	})

	t.Run("numeric keys become strings", func(t *testing.T) {
		results := map[string]interface{}{
			"aggregations": map[string]interface{}{
				"items": map[string]interface{}{
					"buckets": []interface{}{
						map[string]interface{}{"key": 21, "doc_count": 7},
					},
				},
			},
		}

		countMap := bucketsToCountMap(results)

		assert.EqualValues(t, 7, countMap["21"])
	})

	t.Run("missing aggregations yield an empty map", func(t *testing.T) {
		countMap := bucketsToCountMap(map[string]interface{}{})

		assert.Empty(t, countMap)
	})
}
