package services

import (
	"context"

	"participativos/models"
	"participativos/utils"
)

// RecordSource yields the two input record sets. Both must load for the
// result to be usable.
type RecordSource interface {
	Load(ctx context.Context) ([]*models.RawProposal, []*models.ProposalMetadata, error)
}

// DatasetService produces the canonical proposal set once at start-up.
type DatasetService struct {
	source RecordSource
	merger *Merger
	logger *utils.Logger
}

// NewDatasetService creates a ready-to-use DatasetService reading from source.
func NewDatasetService(source RecordSource, logger *utils.Logger) *DatasetService {
	return &DatasetService{source: source, merger: NewMerger(logger), logger: logger}
}

// Load never fails: when either source cannot be read or parsed the caller
// gets an empty dataset and the error is logged.
func (s *DatasetService) Load(ctx context.Context) *models.Dataset {
	raw, meta, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("[dataset] Load failed, continuing with an empty dataset: %v", err)
		return models.EmptyDataset()
	}
	return s.merger.Merge(raw, meta)
}
