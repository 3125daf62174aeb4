package cleanup

import (
	"fmt"
	"time"

	"casereview/api/models"
	loaderService "casereview/api/services/loader"
	"casereview/api/utils"

	esRepo "casereview/api/repositories/elasticsearch"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/go-co-op/gocron"
)

type (
	CleanupService struct {
		Initialized bool
		Es7Client   *es7.Client
		Config      *models.Config
		Loader      *loaderService.LoaderService
	}
)

func NewCleanupService(es *es7.Client, cfg *models.Config, loader *loaderService.LoaderService) *CleanupService {
	cs := &CleanupService{
		Initialized: false,
		Es7Client:   es,
		Config:      cfg,
		Loader:      loader,
	}

	cs.Init()

	return cs
}

func (cs *CleanupService) Init() {
	// initialization if necessary
	if cs.Initialized {
		return
	}

	// - spin up a go routine that will periodically
	//   run through a series of maintenance steps :
	//   - pruning stale load requests from memory
	//   - removing outlier documents whose sample guid no
	//     longer resolves to an individual (broken
	//     pseudo-foreign keys)
	go func() {
		// setup cron job
		s := gocron.NewScheduler(time.UTC)

		s.Every(1).Days().At("04:00:00").Do(func() { // 12am EST
			fmt.Printf("[%s] - Running rna-seq maintenance..\n", time.Now())

			retention := time.Duration(cs.Config.Cleanup.LoadRequestRetentionHours) * time.Hour
			pruned := cs.Loader.PruneLoadRequests(retention)
			fmt.Printf("[%s] - Pruned %d stale load requests..\n", time.Now(), pruned)

			cs.cleanOrphanedOutliers()
		})

		// starts the scheduler in blocking mode, which blocks
		// the current execution path
		s.StartBlocking()
	}()

	cs.Initialized = true
	fmt.Println("Cleanup Service Initialized ..")
}

func (cs *CleanupService) cleanOrphanedOutliers() {
	// - gather sample guids referenced by outlier documents
	outlierBuckets, bucketsErr := esRepo.GetOutlierBucketsByKeyword(cs.Config, cs.Es7Client, "sampleGuid.keyword")
	if bucketsErr != nil {
		fmt.Printf("[%s] - Error getting outlier sample guids : %v..\n", time.Now(), bucketsErr)
		return
	}

	outlierSampleGuids := bucketKeys(outlierBuckets)

	// - gather sample guids attached to known individuals
	individualResult, individualsErr := esRepo.GetAllIndividuals(cs.Config, cs.Es7Client, 10000)
	if individualsErr != nil {
		fmt.Printf("[%s] - Error getting individuals : %v..\n", time.Now(), individualsErr)
		return
	}

	knownSampleGuids := make([]string, 0)
	for _, source := range utils.ExtractHitSources(individualResult) {
		if rawGuids, ok := source["rnaSampleGuids"].([]interface{}); ok {
			for _, rawGuid := range rawGuids {
				knownSampleGuids = append(knownSampleGuids, fmt.Sprint(rawGuid))
			}
		}
	}

	// obtain set-difference between referenced and known sample guids
	orphaned := setDifference(outlierSampleGuids, knownSampleGuids)
	fmt.Printf("[%s] - Orphaned sample guids : %v..\n", time.Now(), orphaned)

	// delete outliers belonging to orphaned samples
	for _, orphanedGuid := range orphaned {
		// fire and forget
		go func(_orphanedGuid string) {
			_, _ = esRepo.DeleteOutliersBySampleGuid(cs.Config, cs.Es7Client, _orphanedGuid)
		}(orphanedGuid)
	}
}

func bucketKeys(results map[string]interface{}) []string {
	keys := make([]string, 0)

	aggs, aggsOk := results["aggregations"].(map[string]interface{})
	if !aggsOk {
		return keys
	}
	items, itemsOk := aggs["items"].(map[string]interface{})
	if !itemsOk {
		return keys
	}
	buckets, bucketsOk := items["buckets"].([]interface{})
	if !bucketsOk {
		return keys
	}

	for _, bucket := range buckets {
		if bucketMapped, ok := bucket.(map[string]interface{}); ok {
			keys = append(keys, fmt.Sprint(bucketMapped["key"]))
		}
	}
	return keys
}

func setDifference(a, b []string) (c []string) {
	m := make(map[string]bool)

	for _, item := range b {
		m[item] = true
	}

	for _, item := range a {
		if _, ok := m[item]; !ok {
			c = append(c, item)
		}
	}
	return
}
