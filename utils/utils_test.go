package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringInSlice(t *testing.T) {
	list := []string{"a", "b", "c"}

	assert.True(t, StringInSlice("b", list))
	assert.False(t, StringInSlice("z", list))
	assert.False(t, StringInSlice("a", nil))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, UniqueStrings([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, UniqueStrings(nil))
}

func TestExtractHitSources(t *testing.T) {
	t.Run("pulls every _source out of a search response", func(t *testing.T) {
		response := map[string]interface{}{
			"hits": map[string]interface{}{
				"hits": []interface{}{
					map[string]interface{}{"_source": map[string]interface{}{"guid": "G-1"}},
					map[string]interface{}{"_source": map[string]interface{}{"guid": "G-2"}},
				},
			},
		}

		sources := ExtractHitSources(response)

		assert.Len(t, sources, 2)
		assert.Equal(t, "G-1", sources[0]["guid"])
	})

	t.Run("tolerates malformed responses", func(t *testing.T) {
		assert.Len(t, ExtractHitSources(map[string]interface{}{}), 0)
		assert.Len(t, ExtractHitSources(map[string]interface{}{"hits": "nope"}), 0)
		assert.Len(t, ExtractHitSources(map[string]interface{}{
			"hits": map[string]interface{}{"hits": []interface{}{"nope"}},
		}), 0)
	})
}
