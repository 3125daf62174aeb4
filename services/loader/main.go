package loaderService

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"casereview/api/models"
	c "casereview/api/models/constants"
	analysisType "casereview/api/models/constants/analysis-type"
	tissueType "casereview/api/models/constants/tissue-type"
	"casereview/api/models/indexes"
	"casereview/api/models/load"
	"casereview/api/models/load/structs"
	esRepo "casereview/api/repositories/elasticsearch"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esutil"
	"golang.org/x/sync/errgroup"
)

const outliersIndex = "rnaseq-outliers"

type (
	LoaderService struct {
		Initialized                 bool
		LoadRequestChan             chan *load.RnaSeqLoadRequest
		LoadRequestMap              map[string]*load.RnaSeqLoadRequest
		LoadRequestMapMux           sync.RWMutex
		OutlierBulkIndexingCapacity int
		OutlierBulkIndexingQueue    chan *structs.OutlierIngestionQueueStructure
		OutlierBulkIndexer          esutil.BulkIndexer
		ConcurrentFileLoadQueue     chan bool
		ElasticsearchClient         *elasticsearch.Client
		Config                      *models.Config
	}
)

func NewLoaderService(es *elasticsearch.Client, cfg *models.Config) *LoaderService {

	ls := &LoaderService{
		Initialized:                 false,
		LoadRequestChan:             make(chan *load.RnaSeqLoadRequest),
		LoadRequestMap:              map[string]*load.RnaSeqLoadRequest{},
		LoadRequestMapMux:           sync.RWMutex{},
		OutlierBulkIndexingCapacity: cfg.Api.BulkIndexingCap,
		OutlierBulkIndexingQueue:    make(chan *structs.OutlierIngestionQueueStructure, cfg.Api.BulkIndexingCap),
		ConcurrentFileLoadQueue:     make(chan bool, cfg.Api.FileProcessingConcurrencyLevel),
		ElasticsearchClient:         es,
		Config:                      cfg,
	}

	var numWorkers = ls.OutlierBulkIndexingCapacity / 100
	if numWorkers < 1 {
		numWorkers = 1
	}

	bi, _ := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      outliersIndex,
		Client:     ls.ElasticsearchClient,
		NumWorkers: numWorkers,
	})
	ls.OutlierBulkIndexer = bi

	ls.Init()

	return ls
}

func (l *LoaderService) Init() {
	// safeguard to prevent multiple initilizations
	if l.Initialized {
		return
	}

	// spin up a go routine acting as a listener for load
	// request updates and outlier bulk indexing
	go func() {
		for {
			select {
			case loadRequest := <-l.LoadRequestChan:
				if loadRequest.State == load.Queued {
					fmt.Printf("Queueing a new rna-seq load request for %s\n", loadRequest.Filename)
				}

				l.storeLoadRequest(loadRequest)

			case queuedItem := <-l.OutlierBulkIndexingQueue:

				queuedOutlier := queuedItem.Outlier
				wg := queuedItem.WaitGroup

				// Prepare the data payload: encode outlier record to JSON
				outlierData, marshallErr := json.Marshal(queuedOutlier)
				if marshallErr != nil {
					fmt.Printf("Cannot encode outlier for sample %s: %s\n", queuedOutlier.SampleGuid, marshallErr)
					wg.Done()
					continue
				}

				// Add an item to the BulkIndexer
				addErr := l.OutlierBulkIndexer.Add(
					context.Background(),
					esutil.BulkIndexerItem{
						Action: "index",

						// Body is an `io.Reader` with the payload
						Body: bytes.NewReader(outlierData),

						// OnSuccess is called for each successful operation
						OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
							defer wg.Done()
						},

						// OnFailure is called for each failed operation
						OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
							defer wg.Done()
							if err != nil {
								fmt.Printf("ERROR: %s", err)
							} else {
								fmt.Printf("ERROR: %s: %s", res.Error.Type, res.Error.Reason)
							}
						},
					},
				)
				if addErr != nil {
					fmt.Printf("Unexpected error: %s", addErr)
					wg.Done()
				}
			}
		}
	}()

	l.Initialized = true
}

// storeLoadRequest stamps and records a snapshot of the request. Only
// the snapshot lands in the map, so the sender may keep mutating its
// own copy without racing concurrent readers.
func (l *LoaderService) storeLoadRequest(loadRequest *load.RnaSeqLoadRequest) {
	snapshot := *loadRequest
	snapshot.UpdatedAt = time.Now().String()

	l.LoadRequestMapMux.Lock()
	l.LoadRequestMap[snapshot.Id.String()] = &snapshot
	l.LoadRequestMapMux.Unlock()
}

// FilenameAlreadyRunning reports whether a queued or running load
// request already exists for this file
func (l *LoaderService) FilenameAlreadyRunning(filename string) bool {
	l.LoadRequestMapMux.RLock()
	defer l.LoadRequestMapMux.RUnlock()

	for _, request := range l.LoadRequestMap {
		if request.Filename == filename &&
			(request.State == load.Queued || request.State == load.Running) {
			return true
		}
	}
	return false
}

// AllLoadRequests returns a point-in-time copy of every known request.
func (l *LoaderService) AllLoadRequests() []load.RnaSeqLoadRequest {
	l.LoadRequestMapMux.RLock()
	defer l.LoadRequestMapMux.RUnlock()

	requests := make([]load.RnaSeqLoadRequest, 0, len(l.LoadRequestMap))
	for _, request := range l.LoadRequestMap {
		requests = append(requests, *request)
	}
	return requests
}

// PruneLoadRequests drops finished requests older than the retention
// window and returns how many were removed
func (l *LoaderService) PruneLoadRequests(olderThan time.Duration) int {
	l.LoadRequestMapMux.Lock()
	defer l.LoadRequestMapMux.Unlock()

	pruned := 0
	for id, request := range l.LoadRequestMap {
		if request.State != load.Done && request.State != load.Error {
			continue
		}

		createdAt, parseErr := time.Parse("2006-01-02 15:04:05.999999999 -0700 MST", strings.Split(request.CreatedAt, " m=")[0])
		if parseErr != nil {
			continue
		}

		if time.Since(createdAt) > olderThan {
			delete(l.LoadRequestMap, id)
			pruned++
		}
	}
	return pruned
}

// ProcessOutlierTsv streams an rna-seq outlier file (optionally gzipped,
// tab separated, one header line) into the outliers index. All documents
// previously loaded for the sample are removed first, so a reload is a
// full replacement of the prior load.
func (l *LoaderService) ProcessOutlierTsv(tsvFilePath string,
	sampleGuid string, individualGuid string,
	fileAnalysisType c.AnalysisType, lineProcessingConcurrencyLevel int) error {

	f, err := os.Open(tsvFilePath)
	if err != nil {
		fmt.Printf("error opening %s : %s\n", tsvFilePath, err)
		return err
	}
	defer f.Close()

	var scanner *bufio.Scanner
	if strings.HasSuffix(tsvFilePath, ".gz") {
		gzr, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			fmt.Printf("error gunzipping %s : %s\n", tsvFilePath, gzErr)
			return gzErr
		}
		defer gzr.Close()
		scanner = bufio.NewScanner(gzr)
	} else {
		scanner = bufio.NewScanner(f)
	}

	// discard prior load for this sample
	if _, deleteErr := esRepo.DeleteOutliersBySampleGuid(l.Config, l.ElasticsearchClient, sampleGuid); deleteErr != nil {
		return deleteErr
	}

	// header line maps column names to positions
	if !scanner.Scan() {
		return fmt.Errorf("empty outlier file %s", tsvFilePath)
	}
	columns := map[string]int{}
	for index, header := range strings.Split(scanner.Text(), "\t") {
		columns[strings.TrimSpace(header)] = index
	}

	var (
		indexingWaitGroup sync.WaitGroup
		createdTime       = time.Now()
	)

	g := new(errgroup.Group)
	g.SetLimit(lineProcessingConcurrencyLevel)

	lineCount := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineCount++

		g.Go(func() error {
			outlier, rowErr := l.parseOutlierRow(line, columns, sampleGuid, individualGuid, fileAnalysisType)
			if rowErr != nil {
				// malformed rows are skipped, not fatal to the load
				fmt.Printf("Skipping row: %s\n", rowErr)
				return nil
			}
			outlier.CreatedTime = createdTime

			indexingWaitGroup.Add(1)
			l.OutlierBulkIndexingQueue <- &structs.OutlierIngestionQueueStructure{
				Outlier:   outlier,
				WaitGroup: &indexingWaitGroup,
			}
			return nil
		})
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return scanErr
	}

	if groupErr := g.Wait(); groupErr != nil {
		return groupErr
	}

	// wait for all queued documents to flush through the bulk indexer
	indexingWaitGroup.Wait()

	fmt.Printf("Processed %d outlier rows from %s\n", lineCount, tsvFilePath)
	return nil
}

func (l *LoaderService) parseOutlierRow(line string, columns map[string]int,
	sampleGuid string, individualGuid string,
	fileAnalysisType c.AnalysisType) (*indexes.RnaSeqOutlier, error) {

	fields := strings.Split(line, "\t")

	getField := func(name string) string {
		index, ok := columns[name]
		if !ok || index >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[index])
	}

	geneId := getField("geneId")
	if geneId == "" {
		return nil, fmt.Errorf("missing geneId in row %q", line)
	}

	pValue, pErr := strconv.ParseFloat(getField("pValue"), 64)
	if pErr != nil {
		return nil, fmt.Errorf("bad pValue for gene %s : %v", geneId, pErr)
	}

	// zScore is optional for some pipelines
	zScore, _ := strconv.ParseFloat(getField("zScore"), 64)

	outlier := &indexes.RnaSeqOutlier{
		SampleGuid:     sampleGuid,
		IndividualGuid: individualGuid,
		AnalysisType:   fileAnalysisType,
		TissueType:     tissueType.CastToTissueType(getField("tissue")),
		GeneId:         geneId,
		PValue:         pValue,
		ZScore:         zScore,
		IsSignificant:  pValue < l.Config.RnaSeq.SignificantPValue,
	}

	if fileAnalysisType == analysisType.Splice {
		start, startErr := strconv.Atoi(getField("start"))
		end, endErr := strconv.Atoi(getField("end"))
		if startErr != nil || endErr != nil {
			return nil, fmt.Errorf("bad interval for gene %s in row %q", geneId, line)
		}

		outlier.Chrom = getField("chrom")
		outlier.Start = start
		outlier.End = end
		outlier.Strand = getField("strand")
		outlier.SpliceType = getField("type")
		outlier.ReadCount, _ = strconv.Atoi(getField("readCount"))
		outlier.DeltaIndex, _ = strconv.ParseFloat(getField("deltaIndex"), 64)

		if outlier.Chrom == "" {
			return nil, fmt.Errorf("missing chrom for splice outlier of gene %s", geneId)
		}
	}

	return outlier, nil
}
