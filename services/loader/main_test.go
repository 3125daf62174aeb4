package loaderService

import (
	"strings"
	"testing"
	"time"

	"casereview/api/models"
	analysisType "casereview/api/models/constants/analysis-type"
	tissueType "casereview/api/models/constants/tissue-type"
	"casereview/api/models/load"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testLoader() *LoaderService {
	cfg := &models.Config{}
	cfg.RnaSeq.SignificantPValue = 0.05

	return &LoaderService{
		Config:         cfg,
		LoadRequestMap: map[string]*load.RnaSeqLoadRequest{},
	}
}

func spliceColumns() map[string]int {
	columns := map[string]int{}
	for index, header := range strings.Split("geneId\tpValue\tzScore\ttissue\tchrom\tstart\tend\tstrand\ttype\treadCount\tdeltaIndex", "\t") {
		columns[header] = index
	}
	return columns
}

func TestParseOutlierRow(t *testing.T) {
	l := testLoader()
	columns := spliceColumns()

	t.Run("parses a complete splice row", func(t *testing.T) {
		line := "ENSG0001\t0.0001\t3.5\tM\tchr7\t117479963\t117480147\t+\tpsi5\t42\t0.21"

		outlier, err := l.parseOutlierRow(line, columns, "S-1", "I-1", analysisType.Splice)

		assert.NoError(t, err)
		assert.Equal(t, "ENSG0001", outlier.GeneId)
		assert.Equal(t, "S-1", outlier.SampleGuid)
		assert.Equal(t, "I-1", outlier.IndividualGuid)
		assert.Equal(t, tissueType.Muscle, outlier.TissueType)
		assert.Equal(t, "chr7", outlier.Chrom)
		assert.Equal(t, 117479963, outlier.Start)
		assert.Equal(t, 117480147, outlier.End)
		assert.Equal(t, "psi5", outlier.SpliceType)
		assert.Equal(t, 42, outlier.ReadCount)
		assert.True(t, outlier.IsSignificant)
	})

	t.Run("flags significance against the configured threshold", func(t *testing.T) {
		line := "ENSG0002\t0.2\t1.1\tM\tchr7\t100\t200\t+\tpsi3\t10\t0.01"

		outlier, err := l.parseOutlierRow(line, columns, "S-1", "I-1", analysisType.Splice)

		assert.NoError(t, err)
		assert.False(t, outlier.IsSignificant)
	})

	t.Run("expression rows skip interval fields", func(t *testing.T) {
		line := "ENSG0003\t0.001\t-2.4\tF\t\t\t\t\t\t\t"

		outlier, err := l.parseOutlierRow(line, columns, "S-1", "I-1", analysisType.Expression)

		assert.NoError(t, err)
		assert.Equal(t, analysisType.Expression, outlier.AnalysisType)
		assert.Equal(t, "", outlier.Chrom)
		assert.Equal(t, 0, outlier.Start)
	})

	t.Run("rejects rows without a geneId", func(t *testing.T) {
		line := "\t0.001\t1.0\tM\tchr1\t100\t200\t+\tpsi5\t5\t0.1"

		_, err := l.parseOutlierRow(line, columns, "S-1", "I-1", analysisType.Splice)
		assert.Error(t, err)
	})

	t.Run("rejects rows with an unparsable pValue", func(t *testing.T) {
		line := "ENSG0004\tnot-a-number\t1.0\tM\tchr1\t100\t200\t+\tpsi5\t5\t0.1"

		_, err := l.parseOutlierRow(line, columns, "S-1", "I-1", analysisType.Splice)
		assert.Error(t, err)
	})

	t.Run("rejects splice rows with a broken interval", func(t *testing.T) {
		line := "ENSG0005\t0.001\t1.0\tM\tchr1\tabc\t200\t+\tpsi5\t5\t0.1"

		_, err := l.parseOutlierRow(line, columns, "S-1", "I-1", analysisType.Splice)
		assert.Error(t, err)
	})

	t.Run("rejects splice rows without a chromosome", func(t *testing.T) {
		line := "ENSG0006\t0.001\t1.0\tM\t\t100\t200\t+\tpsi5\t5\t0.1"

		_, err := l.parseOutlierRow(line, columns, "S-1", "I-1", analysisType.Splice)
		assert.Error(t, err)
	})
}

func TestStoreLoadRequestSnapshots(t *testing.T) {
	l := testLoader()

	request := &load.RnaSeqLoadRequest{
		Id:       uuid.New(),
		Filename: "a.tsv",
		State:    load.Queued,
	}
	l.storeLoadRequest(request)

	// the sender moving its own copy forward must not rewrite history
	request.State = load.Running
	request.Message = "halfway"

	stored := l.LoadRequestMap[request.Id.String()]
	assert.NotSame(t, request, stored)
	assert.Equal(t, load.Queued, stored.State)
	assert.Equal(t, "", stored.Message)
	assert.NotEqual(t, "", stored.UpdatedAt)

	// a later snapshot for the same id replaces the stored one
	l.storeLoadRequest(request)
	assert.Equal(t, load.Running, l.LoadRequestMap[request.Id.String()].State)
}

func TestAllLoadRequestsReturnsCopies(t *testing.T) {
	l := testLoader()

	request := &load.RnaSeqLoadRequest{Id: uuid.New(), Filename: "a.tsv", State: load.Queued}
	l.LoadRequestMap[request.Id.String()] = request

	requests := l.AllLoadRequests()
	assert.Len(t, requests, 1)

	requests[0].State = load.Error
	assert.Equal(t, load.Queued, l.LoadRequestMap[request.Id.String()].State)
}

func TestFilenameAlreadyRunning(t *testing.T) {
	l := testLoader()

	queued := &load.RnaSeqLoadRequest{Id: uuid.New(), Filename: "a.tsv", State: load.Queued}
	done := &load.RnaSeqLoadRequest{Id: uuid.New(), Filename: "b.tsv", State: load.Done}
	l.LoadRequestMap[queued.Id.String()] = queued
	l.LoadRequestMap[done.Id.String()] = done

	assert.True(t, l.FilenameAlreadyRunning("a.tsv"))
	assert.False(t, l.FilenameAlreadyRunning("b.tsv"))
	assert.False(t, l.FilenameAlreadyRunning("c.tsv"))
}

func TestPruneLoadRequests(t *testing.T) {
	l := testLoader()

	oldDone := &load.RnaSeqLoadRequest{
		Id:        uuid.New(),
		Filename:  "old.tsv",
		State:     load.Done,
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour).String(),
	}
	freshDone := &load.RnaSeqLoadRequest{
		Id:        uuid.New(),
		Filename:  "fresh.tsv",
		State:     load.Done,
		CreatedAt: time.Now().String(),
	}
	oldRunning := &load.RnaSeqLoadRequest{
		Id:        uuid.New(),
		Filename:  "running.tsv",
		State:     load.Running,
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour).String(),
	}
	l.LoadRequestMap[oldDone.Id.String()] = oldDone
	l.LoadRequestMap[freshDone.Id.String()] = freshDone
	l.LoadRequestMap[oldRunning.Id.String()] = oldRunning

	pruned := l.PruneLoadRequests(7 * 24 * time.Hour)

	assert.Equal(t, 1, pruned)
	assert.Len(t, l.LoadRequestMap, 2)

	// in-flight requests survive regardless of age
	_, stillThere := l.LoadRequestMap[oldRunning.Id.String()]
	assert.True(t, stillThere)
}
