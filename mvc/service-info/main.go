package serviceInfoMvc

import (
	"net/http"

	serviceInfo "casereview/api/models/constants/service-info"

	"github.com/labstack/echo"
)

func GetServiceInfo(c echo.Context) error {
	// Spec: https://github.com/ga4gh-discovery/ga4gh-service-info
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"type":        serviceInfo.SERVICE_TYPE,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"organization": map[string]string{
			"name": "Case Review",
			"url":  "http://casereview.local",
		},
		"contactUrl": serviceInfo.SERVICE_CONTACT,
		"version":    serviceInfo.SERVICE_VERSION,
	})
}
