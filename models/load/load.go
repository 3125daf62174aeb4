package load

import (
	"github.com/google/uuid"
)

type State string

const (
	Queued  State = "Queued"
	Running State = "Running"
	Done    State = "Done"
	Error   State = "Error"
)

// RnaSeqLoadRequest tracks a single rna-seq outlier file load,
// keyed by the sample it (re)populates
type RnaSeqLoadRequest struct {
	Id             uuid.UUID `json:"id"`
	Filename       string    `json:"filename"`
	SampleGuid     string    `json:"sampleGuid"`
	IndividualGuid string    `json:"individualGuid"`
	State          State     `json:"state"`
	Message        string    `json:"message"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

type LoadResponseDTO struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	SampleGuid string    `json:"sampleGuid"`
	State      State     `json:"state"`
	Message    string    `json:"message"`
}
