package middleware

import (
	"net/http"

	"casereview/api/contexts"
	tissueType "casereview/api/models/constants/tissue-type"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure that a valid `tissueType` HTTP query parameter,
if present, is handled properly, and made available downstream.
An absent tissueType is left unset : the handlers fall back to the
deterministic tissue-selection default.
*/
func ValidateOptionalTissueTypeAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.CaseReviewContext)

		tissueQP := c.QueryParam("tissueType")
		if len(tissueQP) > 0 {
			if !tissueType.IsKnownTissueType(tissueQP) {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'tissueType' query parameter! Check your input")
			}
			gc.TissueType = tissueType.CastToTissueType(tissueQP)
		}

		return next(gc)
	}
}
