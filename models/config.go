package models

type Config struct {
	Debug bool `yaml:"debug" envconfig:"CASEREVIEW_DEBUG" default:"false"`

	Api struct {
		Url  string `yaml:"url" envconfig:"CASEREVIEW_API_URL"`
		Port string `yaml:"port" envconfig:"CASEREVIEW_API_INTERNAL_PORT" default:"5000"`

		// rna-seq outlier file loading
		RnaSeqPath                     string `yaml:"rnaSeqPath" envconfig:"CASEREVIEW_API_RNASEQ_PATH"`
		BulkIndexingCap                int    `yaml:"bulkIndexingCap" envconfig:"CASEREVIEW_API_BULK_INDEXING_CAP" default:"5000"`
		FileProcessingConcurrencyLevel int    `yaml:"fileProcessingConcurrencyLevel" envconfig:"CASEREVIEW_API_FILE_PROCESSING_CONCURRENCY_LEVEL" default:"2"`
	} `yaml:"api"`

	RnaSeq struct {
		// nucleotide distance added symmetrically to a variant's interval
		// when matching nearby splice-junction outliers
		SplicePadding int `yaml:"splicePadding" envconfig:"CASEREVIEW_RNASEQ_SPLICE_PADDING" default:"100"`

		// p-value under which an outlier record is flagged significant
		SignificantPValue float64 `yaml:"significantPValue" envconfig:"CASEREVIEW_RNASEQ_SIGNIFICANT_P_VALUE" default:"0.05"`
	} `yaml:"rnaSeq"`

	Elasticsearch struct {
		Url      string `yaml:"url" envconfig:"CASEREVIEW_ES_URL" default:"http://localhost:9200"`
		Username string `yaml:"username" envconfig:"CASEREVIEW_ES_USERNAME"`
		Password string `yaml:"password" envconfig:"CASEREVIEW_ES_PASSWORD"`
	} `yaml:"elasticsearch"`

	Cleanup struct {
		// completed/errored load requests older than this many hours
		// are pruned by the nightly maintenance job
		LoadRequestRetentionHours int `yaml:"loadRequestRetentionHours" envconfig:"CASEREVIEW_CLEANUP_LOAD_REQUEST_RETENTION_HOURS" default:"168"`
	} `yaml:"cleanup"`
}
