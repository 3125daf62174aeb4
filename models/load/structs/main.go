package structs

import (
	"casereview/api/models/indexes"
	"sync"
)

type OutlierIngestionQueueStructure struct {
	Outlier   *indexes.RnaSeqOutlier
	WaitGroup *sync.WaitGroup
}
