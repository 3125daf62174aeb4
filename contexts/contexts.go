package contexts

import (
	"casereview/api/models"
	c "casereview/api/models/constants"
	loaderService "casereview/api/services/loader"
	variantsService "casereview/api/services/variants"
	viewsService "casereview/api/services/views"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  an elasticsearch client and other global singletons
	CaseReviewContext struct {
		echo.Context
		Es7Client      *es7.Client
		Config         *models.Config
		LoaderService  *loaderService.LoaderService
		VariantService *variantsService.VariantService
		Watcher        *viewsService.Watcher

		// per-request query elements calibrated by middleware
		Chromosome string
		LowerBound int
		UpperBound int

		IndividualGuids []string

		TissueType c.TissueType
		Padding    int
	}
)
