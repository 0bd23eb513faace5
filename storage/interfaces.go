package storage

import "participativos/models"

// ProposalWriter is the interface any export backend must satisfy.
type ProposalWriter interface {
	Write(proposals []*models.Proposal) error
	Close() error
}

// VoteStore is where refreshed vote counts are written back.
type VoteStore interface {
	RawProposals() ([]*models.RawProposal, error)
	ApplyVotes(updates []models.VoteUpdate) (int, error)
	Save() error
}

var (
	_ ProposalWriter = (*CSVWriter)(nil)
	_ VoteStore      = (*ProposalFile)(nil)
)
