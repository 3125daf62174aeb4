package serviceInfoMvc

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"casereview/api/contexts"
	serviceInfo "casereview/api/models/constants/service-info"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func TestGetServiceInfo(t *testing.T) {
	setUpEcho := func(method string, path string) (*contexts.CaseReviewContext, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		gc := &contexts.CaseReviewContext{
			Context: c,
		}
		return gc, rec
	}

	getJsonBody := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		// - extract body bytes from response
		body, _ := io.ReadAll(rec.Body)
		// - unmarshal or decode the JSON to a declared empty interface.
		var bodyJson map[string]interface{}
		json.Unmarshal(body, &bodyJson)

		return bodyJson
	}

	t.Run("should return 200 status ok and ga4gh service fields", func(t *testing.T) {
		// set up
		gc, rec := setUpEcho(http.MethodGet, "/service-info")

		// perform
		GetServiceInfo(gc)

		// verify response status
		assert.Equal(t, http.StatusOK, rec.Code)

		// verify body
		json := getJsonBody(rec)

		assert.Equal(t, json["id"].(string), string(serviceInfo.SERVICE_ID))
		assert.Equal(t, json["name"].(string), string(serviceInfo.SERVICE_NAME))
		assert.Equal(t, json["description"].(string), string(serviceInfo.SERVICE_DESCRIPTION))
		assert.Equal(t, json["version"].(string), string(serviceInfo.SERVICE_VERSION))
	})
}
