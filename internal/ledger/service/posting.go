package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

// PostingLine is one leg of a batch, addressed by account code. Exactly one
// of Debit/Credit is positive.
type PostingLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// PostingRequest is the full input for one Post call: every entry of the
// batch shares the source reference, date, journal type and dimensions.
type PostingRequest struct {
	Source      domain.SourceRef
	Date        time.Time
	Reference   string
	JournalType string
	Dims        domain.Dimensions
	Lines       []PostingLine
}

// PostingResult reports a committed batch.
type PostingResult struct {
	Status  string                `json:"status"`
	Entries []domain.JournalEntry `json:"entries"`
}

// PostingEngine turns a validated batch into ledger rows. Reposting the same
// source replaces the previous batch inside the same transaction, which
// makes every Post idempotent by construction.
type PostingEngine struct {
	db       *gorm.DB
	accounts domain.AccountRepository
	journal  domain.JournalRepository
	logger   *zap.Logger
}

func NewPostingEngine(db *gorm.DB, accounts domain.AccountRepository, journal domain.JournalRepository, logger *zap.Logger) *PostingEngine {
	return &PostingEngine{
		db:       db,
		accounts: accounts,
		journal:  journal,
		logger:   logger,
	}
}

// Post validates the batch, resolves every account, and writes the entries
// inside one transaction after removing any batch previously posted for the
// same source. Nothing is visible to readers until the whole batch commits.
func (e *PostingEngine) Post(ctx context.Context, req PostingRequest) (*PostingResult, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: batch has no lines", domain.ErrUnbalancedBatch)
	}
	if req.Source.Type == "" || req.Source.ID == 0 {
		return nil, errors.New("posting requires a source reference")
	}

	var totalDebit, totalCredit decimal.Decimal
	entries := make([]domain.JournalEntry, 0, len(req.Lines))

	for _, line := range req.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: negative amount on %s", domain.ErrUnbalancedBatch, line.AccountCode)
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: line on %s has both debit and credit", domain.ErrUnbalancedBatch, line.AccountCode)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)

		account, err := e.accounts.FindByCode(ctx, line.AccountCode)
		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.JournalEntry{
			AccountID:    account.ID,
			Date:         req.Date,
			Debit:        line.Debit,
			Credit:       line.Credit,
			Description:  line.Description,
			Reference:    req.Reference,
			JournalType:  req.JournalType,
			SourceType:   req.Source.Type,
			SourceID:     req.Source.ID,
			BranchID:     req.Dims.BranchID,
			DepartmentID: req.Dims.DepartmentID,
			ProjectID:    req.Dims.ProjectID,
		})
	}

	// Hard precondition: the batch must balance exactly before anything is
	// written. Every rule constructs balanced legs, but the engine does not
	// trust them.
	if !totalDebit.Equal(totalCredit) {
		return nil, fmt.Errorf("%w: debit=%s credit=%s source=%s/%d",
			domain.ErrUnbalancedBatch, totalDebit, totalCredit, req.Source.Type, req.Source.ID)
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.journal.DeleteBySource(ctx, tx, req.Source); err != nil {
			return fmt.Errorf("superseding batch for %s/%d: %w", req.Source.Type, req.Source.ID, err)
		}
		if err := e.journal.CreateBatch(ctx, tx, entries); err != nil {
			return fmt.Errorf("writing batch for %s/%d: %w", req.Source.Type, req.Source.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("batch posted",
		zap.String("source_type", string(req.Source.Type)),
		zap.Int64("source_id", req.Source.ID),
		zap.String("journal_type", req.JournalType),
		zap.Int("entries", len(entries)),
		zap.String("total", totalDebit.String()),
	)

	return &PostingResult{Status: "posted", Entries: entries}, nil
}
