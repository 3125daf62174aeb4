package mvc

import (
	"casereview/api/contexts"
	"casereview/api/models/constants"
	genomeVersion "casereview/api/models/constants/genome-version"
	s "casereview/api/models/constants/sort"
	"strconv"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

func RetrieveCommonElements(c echo.Context) (*elasticsearch.Client, string, int, int, constants.GenomeVersion, constants.SortDirection, int) {
	gc := c.(*contexts.CaseReviewContext)
	es := gc.Es7Client

	chromosome := gc.Chromosome

	lowerBound := gc.LowerBound
	upperBound := gc.UpperBound

	// genomeVersion is optional : left empty, the repositories skip the filter
	var version constants.GenomeVersion
	genomeVersionQP := c.QueryParam("genomeVersion")
	if len(genomeVersionQP) > 0 && genomeVersion.IsKnownGenomeVersion(genomeVersionQP) {
		version = genomeVersion.CastToGenomeVersion(genomeVersionQP)
	}

	sortByPosition := s.CastToSortDirection(c.QueryParam("sortByPosition"))

	size := 100 // default
	sizeQP := c.QueryParam("size")
	if len(sizeQP) > 0 {
		parsedSize, sErr := strconv.Atoi(sizeQP)
		if sErr == nil && parsedSize > 0 {
			size = parsedSize
		}
	}

	return es, chromosome, lowerBound, upperBound, version, sortByPosition, size
}
