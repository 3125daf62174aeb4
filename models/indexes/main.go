package indexes

import (
	c "casereview/api/models/constants"
	"time"
)

type Variant struct {
	Guid          string          `json:"guid"`
	VariantId     string          `json:"variantId"`
	Chrom         string          `json:"chrom"`
	Pos           int             `json:"pos"`
	End           int             `json:"end"`
	EndChrom      string          `json:"endChrom,omitempty"` // set for breakpoint-spanning structural variants
	Ref           string          `json:"ref"`
	Alt           string          `json:"alt"`
	GenomeVersion c.GenomeVersion `json:"genomeVersion"`

	FamilyGuids []string `json:"familyGuids"`
	GeneIds     []string `json:"geneIds"`

	ClinvarSignificance string `json:"clinvarSignificance"`

	CreatedTime time.Time `json:"createdTime"`
}

type Family struct {
	Guid        string `json:"guid"`
	ProjectGuid string `json:"projectGuid"`
	FamilyId    string `json:"familyId"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`

	AnalysisStatus c.AnalysisStatus `json:"analysisStatus"`

	// internal case-review fields, editable through the bulk-edit api
	CaseReviewNotes   string `json:"caseReviewNotes"`
	CaseReviewSummary string `json:"caseReviewSummary"`
}

type Individual struct {
	Guid         string `json:"guid"`
	FamilyGuid   string `json:"familyGuid"`
	IndividualId string `json:"individualId"`
	DisplayName  string `json:"displayName"`

	Sex      c.Sex            `json:"sex"`
	Affected c.AffectedStatus `json:"affected"`
	Notes    string           `json:"notes"`

	// HPO terms, fully replaced on each edit
	Features []HpoTerm `json:"features"`

	RnaSampleGuids []string `json:"rnaSampleGuids"`
}

type HpoTerm struct {
	Id       string `json:"id"` // e.g. HP:0001250
	Category string `json:"category"`
	Label    string `json:"label"`
}

type Project struct {
	Guid        string `json:"guid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsDemo      bool   `json:"isDemo"`
}

type RnaSeqOutlier struct {
	SampleGuid     string `json:"sampleGuid"`
	IndividualGuid string `json:"individualGuid"`

	AnalysisType c.AnalysisType `json:"analysisType"`
	TissueType   c.TissueType   `json:"tissueType"`

	GeneId string `json:"geneId"`

	// genomic interval; only populated for splice-junction outliers
	Chrom  string `json:"chrom,omitempty"`
	Start  int    `json:"start,omitempty"`
	End    int    `json:"end,omitempty"`
	Strand string `json:"strand,omitempty"`

	// splice-junction support columns
	SpliceType string  `json:"spliceType,omitempty"` // psi3 | psi5 | theta
	ReadCount  int     `json:"readCount,omitempty"`
	DeltaIndex float64 `json:"deltaIndex,omitempty"` // delta intron jaccard index

	PValue        float64 `json:"pValue"`
	ZScore        float64 `json:"zScore"`
	IsSignificant bool    `json:"isSignificant"`

	CreatedTime time.Time `json:"createdTime"`
}

var MAPPING_FIELDS_KEYWORD_IG256 = map[string]interface{}{
	"keyword": map[string]interface{}{
		"type":         "keyword",
		"ignore_above": 256,
	},
}
var MAPPING_TEXT = map[string]interface{}{"type": "text", "fields": MAPPING_FIELDS_KEYWORD_IG256}
var MAPPING_LONG = map[string]interface{}{"type": "long"}
var MAPPING_FLOAT64 = map[string]interface{}{"type": "double"}
var MAPPING_BOOL = map[string]interface{}{"type": "boolean"}
var MAPPING_DATE = map[string]interface{}{"type": "date"}

var VARIANT_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"guid":                MAPPING_TEXT,
		"variantId":           MAPPING_TEXT,
		"chrom":               MAPPING_TEXT,
		"pos":                 MAPPING_LONG,
		"end":                 MAPPING_LONG,
		"endChrom":            MAPPING_TEXT,
		"ref":                 MAPPING_TEXT,
		"alt":                 MAPPING_TEXT,
		"genomeVersion":       MAPPING_TEXT,
		"familyGuids":         MAPPING_TEXT,
		"geneIds":             MAPPING_TEXT,
		"clinvarSignificance": MAPPING_TEXT,
		"createdTime":         MAPPING_DATE,
	},
}

var FAMILY_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"guid":              MAPPING_TEXT,
		"projectGuid":       MAPPING_TEXT,
		"familyId":          MAPPING_TEXT,
		"displayName":       MAPPING_TEXT,
		"description":       MAPPING_TEXT,
		"analysisStatus":    MAPPING_TEXT,
		"caseReviewNotes":   MAPPING_TEXT,
		"caseReviewSummary": MAPPING_TEXT,
	},
}

var INDIVIDUAL_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"guid":         MAPPING_TEXT,
		"familyGuid":   MAPPING_TEXT,
		"individualId": MAPPING_TEXT,
		"displayName":  MAPPING_TEXT,
		"sex":          MAPPING_TEXT,
		"affected":     MAPPING_TEXT,
		"notes":        MAPPING_TEXT,
		"features": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":       MAPPING_TEXT,
				"category": MAPPING_TEXT,
				"label":    MAPPING_TEXT,
			},
		},
		"rnaSampleGuids": MAPPING_TEXT,
	},
}

var PROJECT_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"guid":        MAPPING_TEXT,
		"name":        MAPPING_TEXT,
		"description": MAPPING_TEXT,
		"isDemo":      MAPPING_BOOL,
	},
}

var RNASEQ_OUTLIER_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"sampleGuid":     MAPPING_TEXT,
		"individualGuid": MAPPING_TEXT,
		"analysisType":   MAPPING_TEXT,
		"tissueType":     MAPPING_TEXT,
		"geneId":         MAPPING_TEXT,
		"chrom":          MAPPING_TEXT,
		"start":          MAPPING_LONG,
		"end":            MAPPING_LONG,
		"strand":         MAPPING_TEXT,
		"spliceType":     MAPPING_TEXT,
		"readCount":      MAPPING_LONG,
		"deltaIndex":     MAPPING_FLOAT64,
		"pValue":         MAPPING_FLOAT64,
		"zScore":         MAPPING_FLOAT64,
		"isSignificant":  MAPPING_BOOL,
		"createdTime":    MAPPING_DATE,
	},
}
