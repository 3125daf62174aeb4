package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"casereview/api/contexts"
	crm "casereview/api/middleware"
	"casereview/api/models"
	serviceInfo "casereview/api/models/constants/service-info"
	"casereview/api/models/indexes"
	pedigreeMvc "casereview/api/mvc/pedigree"
	rnaseqMvc "casereview/api/mvc/rnaseq"
	serviceInfoMvc "casereview/api/mvc/service-info"
	variantsMvc "casereview/api/mvc/variants"
	esRepo "casereview/api/repositories/elasticsearch"
	"casereview/api/services/cleanup"
	loaderService "casereview/api/services/loader"
	variantsService "casereview/api/services/variants"
	viewsService "casereview/api/services/views"
	"casereview/api/utils"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	// optional yaml overlay for local development
	if configFile := os.Getenv("CASEREVIEW_CONFIG_FILE"); configFile != "" {
		if overlayErr := utils.OverlayYamlConfig(&cfg, configFile); overlayErr != nil {
			fmt.Println(overlayErr)
			os.Exit(2)
		}
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tRNA-Seq Directory Path : %s \n"+
		"\tBulk Indexing Cap : %d\n"+
		"\tFile Processing Concurrency Level : %d\n"+
		"\tSplice Padding : %d\n"+
		"\tSignificant P-Value : %f\n"+
		"\tLoad Request Retention (hours) : %d\n"+
		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Api.RnaSeqPath,
		cfg.Api.BulkIndexingCap,
		cfg.Api.FileProcessingConcurrencyLevel,
		cfg.RnaSeq.SplicePadding,
		cfg.RnaSeq.SignificantPValue,
		cfg.Cleanup.LoadRequestRetentionHours,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.Api.Port)
	// --

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Elasticsearch
	es := utils.CreateEsConnection(&cfg)
	if initErr := esRepo.InitIndices(&cfg, es); initErr != nil {
		fmt.Println(initErr)
		os.Exit(2)
	}

	// Service Singletons
	ls := loaderService.NewLoaderService(es, &cfg)
	vs := variantsService.NewVariantService(&cfg)
	cleanup.NewCleanupService(es, &cfg, ls)

	watcher := viewsService.NewWatcher()
	watcher.Subscribe("junction-outlier-log", func(state viewsService.State) interface{} {
		return viewsService.SignificantJunctionOutliersByIndividual(state)
	}, func(derived interface{}) {
		byIndividual := derived.(map[string][]indexes.RnaSeqOutlier)
		fmt.Printf("[%s] - significant junction outliers now span %d individuals\n", time.Now(), len(byIndividual))
	})

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom case review" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.CaseReviewContext{
				Context:        c,
				Es7Client:      es,
				Config:         &cfg,
				LoaderService:  ls,
				VariantService: vs,
				Watcher:        watcher,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		fmt.Printf("[%s] - Root hit!\n", time.Now())
		return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Variants
	e.GET("/variants/overview", variantsMvc.GetVariantsOverview)

	e.GET("/variants/get/by/variantId", variantsMvc.VariantsGetByVariantId,
		// middleware
		crm.ValidateOptionalChromosomeAttribute,
		crm.MandateCalibratedBounds)
	e.GET("/variants/get/by/familyId", variantsMvc.VariantsGetByFamilyId,
		// middleware
		crm.ValidateOptionalChromosomeAttribute,
		crm.MandateCalibratedBounds)

	e.GET("/variants/count/by/familyId", variantsMvc.VariantsCountByFamilyId,
		// middleware
		crm.ValidateOptionalChromosomeAttribute,
		crm.MandateCalibratedBounds)

	// -- RNA-Seq Outliers
	e.GET("/rnaseq/overview", rnaseqMvc.GetRnaSeqOverview)

	e.GET("/rnaseq/outliers/get/by/individualId", rnaseqMvc.OutliersGetByIndividualId,
		// middleware
		crm.MandateIndividualGuidsPluralAttribute,
		crm.ValidateOptionalTissueTypeAttribute)
	e.GET("/rnaseq/outliers/tissues/by/individualId", rnaseqMvc.TissueOptionsGetByIndividualId,
		// middleware
		crm.MandateIndividualGuidSingularAttribute)
	e.GET("/rnaseq/outliers/overlapping/by/variantId", rnaseqMvc.OverlappingJunctionOutliersGetByVariantId,
		// middleware
		crm.MandateVariantGuidAttribute,
		crm.ValidateOptionalTissueTypeAttribute,
		crm.CalibrateOptionalPaddingAttribute)

	e.GET("/rnaseq/load/run", rnaseqMvc.RnaSeqLoad,
		// middleware
		crm.MandateIndividualGuidSingularAttribute)
	e.GET("/rnaseq/load/requests", rnaseqMvc.GetAllRnaSeqLoadRequests)
	e.GET("/rnaseq/load/stats", rnaseqMvc.RnaSeqLoadStats)

	// -- Pedigree
	e.GET("/projects", pedigreeMvc.ProjectsGet)
	e.GET("/families/get/by/projectId", pedigreeMvc.FamiliesGetByProjectId)
	e.GET("/individuals/get/by/familyId", pedigreeMvc.IndividualsGetByFamilyId)
	e.GET("/individuals/grouped/by/familyId", pedigreeMvc.IndividualsGetGroupedByFamilyId)

	e.POST("/families/bulk-edit", pedigreeMvc.FamiliesBulkEdit)
	e.POST("/individuals/bulk-edit", pedigreeMvc.IndividualsBulkEdit)
	e.POST("/individuals/hpo-terms/bulk-edit", pedigreeMvc.HpoTermsBulkEdit)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
