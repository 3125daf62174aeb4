package middleware

import (
	"net/http"
	"strconv"

	"casereview/api/contexts"

	"github.com/labstack/echo"
)

/*
Echo middleware to calibrate the splice `padding` HTTP query parameter.
When absent the configured default applies ; a provided value must be a
non-negative integer.
*/
func CalibrateOptionalPaddingAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.CaseReviewContext)

		// default from configuration
		gc.Padding = gc.Config.RnaSeq.SplicePadding

		paddingQP := c.QueryParam("padding")
		if len(paddingQP) > 0 {
			padding, conversionErr := strconv.Atoi(paddingQP)
			if conversionErr != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Error converting 'padding' query parameter! Check your input")
			}
			if padding < 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Please provide a non-negative 'padding'!")
			}
			gc.Padding = padding
		}

		return next(gc)
	}
}
