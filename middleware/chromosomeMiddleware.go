package middleware

import (
	"net/http"

	"casereview/api/contexts"
	"casereview/api/models/constants/chromosome"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure that a valid `chromosome` HTTP query parameter,
if present, is handled properly, and made available downstream
*/
func ValidateOptionalChromosomeAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.CaseReviewContext)

		// check for chromosome query parameter
		chromQP := c.QueryParam("chromosome")

		if len(chromQP) > 0 && !chromosome.IsValidHumanChromosome(chromQP) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'chromosome' query parameter! Check your input")
		}

		gc.Chromosome = chromosome.Normalize(chromQP)
		return next(gc)
	}
}
