package middleware

import (
	"net/http"
	"strings"

	"casereview/api/contexts"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure a mandatory singular `individualGuid` HTTP query
parameter was provided and make it available downstream
*/
func MandateIndividualGuidSingularAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.CaseReviewContext)

		// check for individualGuid query parameter
		individualGuid := c.QueryParam("individualGuid")
		if len(individualGuid) == 0 {
			// if no guid was provided return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'individualGuid' query parameter for querying!")
		}

		gc.IndividualGuids = append(gc.IndividualGuids, individualGuid)
		return next(gc)
	}
}

/*
Echo middleware to ensure mandatory pluralized `individualGuid`
(spelled `individualGuids`, comma separated) HTTP query parameters
were provided and make them available downstream
*/
func MandateIndividualGuidsPluralAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.CaseReviewContext)

		individualGuidsQP := c.QueryParam("individualGuids")
		if len(individualGuidsQP) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'individualGuids' query parameter for querying!")
		}

		gc.IndividualGuids = append(gc.IndividualGuids, strings.Split(individualGuidsQP, ",")...)
		return next(gc)
	}
}

/*
Echo middleware to ensure a mandatory `variantGuid` HTTP query parameter
was provided
*/
func MandateVariantGuidAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		variantGuid := c.QueryParam("variantGuid")
		if len(variantGuid) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'variantGuid' query parameter for querying!")
		}

		return next(c)
	}
}
